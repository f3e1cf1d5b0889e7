package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"chemtab/loader"

	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported file extensions and the format each one loads as",
	Long: `Print the extension registry used for loader dispatch.

Matching is exact and case sensitive, so a file named DATA.CSV is not
recognized. Use "chemtab load --format" to force a format for files with
unregistered extensions.`,
	Example: `
  # Show the extension table
  chemtab formats
`,
	Run: func(cmd *cobra.Command, args []string) {
		printFormats(os.Stdout)
	},
}

func printFormats(out io.Writer) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EXTENSION\tFORMAT")
	for _, entry := range loader.DefaultRegistry().Entries() {
		fmt.Fprintf(w, "%s\t%s\n", entry.Ext, entry.Format)
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
