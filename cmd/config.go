package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage chemtab configuration file values.",
	Long: `Create, edit, display, and delete the chemtab configuration file.

The configuration stores application-wide values and loader rules:
- store.path
- preview.rows
- rules[].name / file_template / format / options`,
	Example: `
  # Create default config in $HOME/.chemtab.yaml
  chemtab config create

  # Show active config and source file
  chemtab config show

  # Open active config in editor (creates example if missing)
  chemtab config edit

  # Delete active config file
  chemtab config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
