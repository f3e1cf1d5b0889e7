package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	datasetsDeleteDBPath string
	datasetsDeleteAll    bool
)

var (
	deletePromptInput  io.Reader = os.Stdin
	deletePromptOutput io.Writer = os.Stdout
)

var datasetsDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete one dataset, or every dataset with --all",
	Long: `Destructive store cleanup command.

Deletes one named dataset, or the complete store content with --all. Before
deletion, an interactive security prompt requires typing exactly "Y".`,
	Example: `
  # Delete one dataset (requires interactive confirmation)
  chemtab datasets delete screening

  # Delete all datasets in the store
  chemtab datasets delete --all --db ./chemtab.db
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if datasetsDeleteAll && len(args) > 0 {
			return fmt.Errorf("--all cannot be combined with a dataset name")
		}
		if !datasetsDeleteAll && len(args) == 0 {
			return fmt.Errorf("specify a dataset name or --all")
		}

		target := "all datasets"
		if !datasetsDeleteAll {
			target = fmt.Sprintf("dataset %q", args[0])
		}
		confirmed, err := confirmDeletePrompt(deletePromptInput, deletePromptOutput, target)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("delete aborted: confirmation was not 'Y'")
		}

		store, err := openStore(datasetsDeleteDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if datasetsDeleteAll {
			deleted, err := store.DeleteAllDatasets()
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d datasets.\n", deleted)
			return nil
		}

		found, err := store.DeleteDataset(args[0])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("dataset not found: %s", args[0])
		}
		fmt.Printf("Deleted dataset: %s\n", args[0])
		return nil
	},
}

func init() {
	datasetsCmd.AddCommand(datasetsDeleteCmd)

	datasetsDeleteCmd.Flags().StringVar(&datasetsDeleteDBPath, "db", "", "Path to the dataset store (default: store.path from config)")
	datasetsDeleteCmd.Flags().BoolVar(&datasetsDeleteAll, "all", false, "Delete every dataset in the store")
}

func confirmDeletePrompt(input io.Reader, output io.Writer, target string) (bool, error) {
	if input == nil {
		return false, fmt.Errorf("delete confirmation input is not available")
	}

	if output == nil {
		output = io.Discard
	}

	if _, err := fmt.Fprintf(output, "Delete %s? Type Y to confirm: ", target); err != nil {
		return false, fmt.Errorf("write delete confirmation prompt: %w", err)
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			line = strings.TrimSpace(line)
			return line == "Y", nil
		}
		return false, fmt.Errorf("read delete confirmation: %w", err)
	}
	return strings.TrimSpace(line) == "Y", nil
}
