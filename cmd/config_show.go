package cmd

import (
	"fmt"
	"github.com/spf13/viper"

	"chemtab/config"
	"github.com/spf13/cobra"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  chemtab config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		}
		fmt.Println("Configuration:")
		fmt.Printf("store.path: %s\n", cfg.Store.Path)
		fmt.Printf("preview.rows: %d\n", cfg.Preview.Rows)
		fmt.Printf("rules: %d\n", len(cfg.Rules))
		for i, rule := range cfg.Rules {
			fmt.Printf("rules[%d].name: %s\n", i, rule.Name)
			fmt.Printf("rules[%d].file_template: %s\n", i, rule.FileTemplate)
			formatStr := "(from extension)"
			if rule.Format != "" {
				formatStr = rule.Format
			}
			fmt.Printf("rules[%d].format: %s\n", i, formatStr)
			for key, value := range rule.Options {
				fmt.Printf("rules[%d].options.%s: %v\n", i, key, value)
			}
		}
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
