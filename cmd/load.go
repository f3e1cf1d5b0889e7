package cmd

import (
	"fmt"
	"os"
	"strings"

	"chemtab/config"
	"chemtab/loader"
	"chemtab/storage"

	"github.com/spf13/cobra"
)

var (
	loadFilters   []string
	loadOptions   []string
	loadFormat    string
	loadSave      bool
	loadName      string
	loadOverwrite bool
	loadDBPath    string
	loadPreview   int
	loadAll       bool
)

var loadCmd = &cobra.Command{
	Use:   "load <files...>",
	Short: "Load CSV/Excel/SMILES/SDF files into tables, filter, preview, and store them",
	Long: `Read each input file with the loader matching its extension, apply the
ordered column filters, and print a preview of the resulting table.

The format is resolved from the file extension unless --format or a matching
config rule overrides it. Loader options from a matching rule are applied
first; --option values override them key by key.

Filters are cumulative: each --filter keeps only rows whose column value is a
member of the given set. Values are typed the way they look: numbers compare
as numbers, true/false as booleans, null matches missing cells, and anything
else as text.

With --save, each table is persisted as a dataset named after its source file.
--name picks the dataset name explicitly and applies to a single input file.`,
	Example: `
  # Preview a CSV file
  chemtab load compounds.csv

  # Semicolon-delimited CSV without a header row
  chemtab load export.csv --option "delimiter=;" --option header=false

  # Load a SMILES file that hides behind a .txt extension
  chemtab load deck.txt --format smiles

  # Keep only actives below 300 Da, show every row
  chemtab load screen.sdf --filter Active=true --filter "MW=250|275.5" --all

  # Save each file as a dataset named after it
  chemtab load plates/*.csv --save --db ./chemtab.db

  # Save one file under an explicit name, replacing a previous run
  chemtab load fresh.sdf --name screening --overwrite
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		filters, err := loader.ParseFilterArgs(loadFilters)
		if err != nil {
			return err
		}
		options, err := loader.ParseOptionArgs(loadOptions)
		if err != nil {
			return err
		}

		runOptions := loader.RunOptions{
			Format:      loadFormat,
			Options:     options,
			Filters:     filters,
			DatasetName: loadName,
			Overwrite:   loadOverwrite,
		}

		if loadSave || loadName != "" {
			dbPath := loadDBPath
			if strings.TrimSpace(dbPath) == "" {
				dbPath = cfg.Store.Path
			}
			store, err := storage.OpenSQLite(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()
			runOptions.Store = store
		}

		result, err := loader.Run(args, *cfg, runOptions)
		if err != nil {
			return err
		}

		for _, loaded := range result.Tables {
			fmt.Printf("%s (%s): %d rows, %d columns\n", loaded.Path, loaded.Format, loaded.Table.NumRows(), loaded.Table.NumCols())
			if loaded.Rule != "" {
				fmt.Printf("Applied rule: %s\n", loaded.Rule)
			}
			limit := resolvePreviewLimit(loadAll, loadPreview, cfg.Preview.Rows, loaded.Table.NumRows())
			if err := printTablePreview(os.Stdout, loaded.Table, limit); err != nil {
				return err
			}
			if loaded.Dataset != "" {
				fmt.Printf("Saved dataset: %s\n", loaded.Dataset)
			}
		}

		fmt.Printf("Load completed. Files: %d, Rows loaded: %d, Rows kept: %d, Datasets saved: %d\n",
			result.FilesProcessed,
			result.RowsLoaded,
			result.RowsKept,
			result.DatasetsSaved,
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringArrayVar(&loadFilters, "filter", nil, "Keep rows whose column matches, column=value or column=value|value (repeatable, applied in order)")
	loadCmd.Flags().StringArrayVar(&loadOptions, "option", nil, "Loader option, key=value (repeatable, overrides matching rule options)")
	loadCmd.Flags().StringVarP(&loadFormat, "format", "f", "", "Input format: csv|excel|smiles|sdf (optional, inferred from extension when omitted)")
	loadCmd.Flags().BoolVar(&loadSave, "save", false, "Persist each loaded table as a dataset named after its file")
	loadCmd.Flags().StringVar(&loadName, "name", "", "Dataset name for the saved table (single input file, implies --save)")
	loadCmd.Flags().BoolVar(&loadOverwrite, "overwrite", false, "Replace an existing dataset with the same name")
	loadCmd.Flags().StringVar(&loadDBPath, "db", "", "Path to the dataset store (default: store.path from config)")
	loadCmd.Flags().IntVar(&loadPreview, "preview", 0, "Preview row count (default: preview.rows from config)")
	loadCmd.Flags().BoolVar(&loadAll, "all", false, "Print every row instead of a preview")
}
