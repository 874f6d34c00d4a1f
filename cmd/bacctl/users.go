package main

import (
	"github.com/bac-interop/interop-backend/internal/bac/domain"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List or show users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of users",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		page := domain.Page{Limit: limit, Offset: offset}
		res, err := catalog.ListUsers(cmd.Context(), page)
		if err != nil {
			return err
		}
		return printJSON(cmd, pageOutput[domain.UserRecord]{
			Total: res.Total, Count: len(res.Items), Limit: limit, Offset: offset, Items: res.Items,
		})
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show the detail of one user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		user, err := catalog.GetUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, user)
	},
}

func init() {
	usersListCmd.Flags().Int("limit", 50, "page size (1-200)")
	usersListCmd.Flags().Int("offset", 0, "number of users to skip")

	usersCmd.AddCommand(usersListCmd, usersGetCmd)
	rootCmd.AddCommand(usersCmd)
}
