package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"chemtab/storage"

	"github.com/spf13/cobra"
)

var datasetsListDBPath string

var datasetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored datasets with their sizes and origins",
	Example: `
  # List datasets in the configured store
  chemtab datasets list

  # List datasets in an explicit store file
  chemtab datasets list --db ./chemtab.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(datasetsListDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		datasets, err := store.ListDatasets()
		if err != nil {
			return err
		}
		printDatasetList(os.Stdout, datasets)
		return nil
	},
}

func printDatasetList(out io.Writer, datasets []storage.Dataset) {
	if len(datasets) == 0 {
		fmt.Fprintln(out, "No datasets stored.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSOURCE\tFORMAT\tROWS\tCOLS\tCREATED")
	for _, ds := range datasets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			ds.Name,
			ds.SourceFile,
			ds.Format,
			ds.RowCount,
			ds.ColCount,
			ds.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

func init() {
	datasetsCmd.AddCommand(datasetsListCmd)

	datasetsListCmd.Flags().StringVar(&datasetsListDBPath, "db", "", "Path to the dataset store (default: store.path from config)")
}
