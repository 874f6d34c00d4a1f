package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bac-interop/interop-backend/config"
	"github.com/bac-interop/interop-backend/internal/bac/service"
	"github.com/bac-interop/interop-backend/internal/bootstrap"
	"github.com/bac-interop/interop-backend/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bacctl",
	Short: "Query the users and publications catalogs from the terminal",
	Long: `bacctl runs the same catalog operations as the HTTP API against the
configured upstream systems and prints the normalized result as JSON.
Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadCatalog() (*service.CatalogService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logging.SetLevel(logging.ParseLevel(cfg.App.LogLevel))
	return bootstrap.BuildCatalog(cfg, nil)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// pageOutput mirrors the HTTP list response: items plus the headers' numbers.
type pageOutput[T any] struct {
	Total  int `json:"total"`
	Count  int `json:"count"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Items  []T `json:"items"`
}
