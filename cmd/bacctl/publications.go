package main

import (
	"github.com/bac-interop/interop-backend/internal/bac/domain"
	"github.com/spf13/cobra"
)

var publicationsCmd = &cobra.Command{
	Use:     "publications",
	Aliases: []string{"pubs"},
	Short:   "List or show publications",
}

var publicationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of publications",
	Long: `List searches the publications catalog. Region, crop and type are sent
upstream as substring clauses; system and type are then matched exactly
(accent and case insensitive, type through the equivalence table).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		region, _ := cmd.Flags().GetString("region")
		system, _ := cmd.Flags().GetString("system")
		crop, _ := cmd.Flags().GetString("crop")
		typ, _ := cmd.Flags().GetString("type")

		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		filter := domain.PublicationFilter{Region: region, System: system, Crop: crop, Type: typ}
		res, err := catalog.ListPublications(cmd.Context(), filter, domain.Page{Limit: limit, Offset: offset})
		if err != nil {
			return err
		}
		return printJSON(cmd, pageOutput[domain.PublicationRecord]{
			Total: res.Total, Count: len(res.Items), Limit: limit, Offset: offset, Items: res.Items,
		})
	},
}

var publicationsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show the detail of one publication (with or without the alma prefix)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		pub, err := catalog.GetPublication(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, pub)
	},
}

func init() {
	publicationsListCmd.Flags().Int("limit", 10, "page size (1-200)")
	publicationsListCmd.Flags().Int("offset", 0, "number of publications to skip")
	publicationsListCmd.Flags().String("region", "", "filter by region")
	publicationsListCmd.Flags().String("system", "", "filter by production system label")
	publicationsListCmd.Flags().String("crop", "", "filter by crop")
	publicationsListCmd.Flags().String("type", "", "filter by document type (boletin, manual, libro, ...)")

	publicationsCmd.AddCommand(publicationsListCmd, publicationsGetCmd)
	rootCmd.AddCommand(publicationsCmd)
}
