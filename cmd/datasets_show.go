package cmd

import (
	"fmt"
	"os"

	"chemtab/config"
	"chemtab/loader"

	"github.com/spf13/cobra"
)

var (
	datasetsShowDBPath  string
	datasetsShowFilters []string
	datasetsShowPreview int
	datasetsShowAll     bool
)

var datasetsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a stored dataset, optionally filtered",
	Long: `Load one dataset from the store and print it the same way "chemtab load"
previews freshly loaded files. --filter applies the same ordered column
filters, so a stored dataset can be narrowed without reloading the source
file.`,
	Example: `
  # Show the first rows of a dataset
  chemtab datasets show screening

  # Show only rows with a known melting point
  chemtab datasets show screening --filter "MP=null" --all

  # Membership filter over two SMILES values
  chemtab datasets show solvents --filter "SMILES=CCO|c1ccccc1"
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		filters, err := loader.ParseFilterArgs(datasetsShowFilters)
		if err != nil {
			return err
		}

		store, err := openStore(datasetsShowDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		ds, tbl, err := store.GetDataset(args[0])
		if err != nil {
			return err
		}
		filtered, err := filters.Apply(tbl)
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s from %s): %d rows, %d columns\n", ds.Name, ds.Format, ds.SourceFile, tbl.NumRows(), tbl.NumCols())
		if filters.Len() > 0 {
			fmt.Printf("Rows after filters: %d\n", filtered.NumRows())
		}
		limit := resolvePreviewLimit(datasetsShowAll, datasetsShowPreview, cfg.Preview.Rows, filtered.NumRows())
		return printTablePreview(os.Stdout, filtered, limit)
	},
}

func init() {
	datasetsCmd.AddCommand(datasetsShowCmd)

	datasetsShowCmd.Flags().StringVar(&datasetsShowDBPath, "db", "", "Path to the dataset store (default: store.path from config)")
	datasetsShowCmd.Flags().StringArrayVar(&datasetsShowFilters, "filter", nil, "Keep rows whose column matches, column=value or column=value|value (repeatable, applied in order)")
	datasetsShowCmd.Flags().IntVar(&datasetsShowPreview, "preview", 0, "Preview row count (default: preview.rows from config)")
	datasetsShowCmd.Flags().BoolVar(&datasetsShowAll, "all", false, "Print every row instead of a preview")
}
