package cmd

import (
	"strings"

	"chemtab/config"
	"chemtab/storage"

	"github.com/spf13/cobra"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Browse and manage datasets stored in the local SQLite database.",
	Long: `List, inspect, and delete datasets saved by "chemtab load" or the web UI.

Every subcommand reads the store at --db, falling back to store.path from the
configuration file.`,
	Example: `
  # List stored datasets
  chemtab datasets list

  # Show one dataset, filtered
  chemtab datasets show screening --filter Active=true

  # Delete one dataset (asks for confirmation)
  chemtab datasets delete screening

  # Delete everything in the store
  chemtab datasets delete --all
`,
}

func init() {
	rootCmd.AddCommand(datasetsCmd)
}

// resolveStorePath prefers the --db flag and falls back to the configured
// store path.
func resolveStorePath(flagValue string) (string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue, nil
	}
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return "", err
	}
	return cfg.Store.Path, nil
}

func openStore(flagValue string) (*storage.SQLiteStore, error) {
	path, err := resolveStorePath(flagValue)
	if err != nil {
		return nil, err
	}
	return storage.OpenSQLite(path)
}
