/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"github.com/spf13/viper"
	"os"

	"chemtab/config"
	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chemtab",
	Short: "Load, filter, store, and browse tabular and chemical structure files.",
	Long: `
**********************************************
*                 CHEMTAB                    *
**********************************************

This CLI loads tabular and chemical structure files into one uniform in-memory
table, narrows rows with ordered column filters, and can persist results as
named datasets in a local SQLite database.

Supported input formats:
- CSV: .csv
- Excel: .xls, .xlsx
- SMILES line notation: .smi
- SDF molecular records: .sdf
`,
	Example: `
  # Create configuration file
  chemtab config create

  # Load a CSV file and preview the first rows
  chemtab load compounds.csv

  # Load an SDF screen, keep actives, save as a dataset
  chemtab load screen.sdf --filter "Active=true" --name actives

  # List supported extensions
  chemtab formats

  # Browse stored datasets
  chemtab datasets list

  # Start the local web UI
  chemtab serve
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file override (default discovery: $HOME/.chemtab.yaml, then ./.chemtab.yaml)")

	// Optional: Validate configuration
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !requiresConfig(cmd) {
			return nil
		}

		_, err := config.LoadAndValidate()
		return err
	}
}

func requiresConfig(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	switch cmd.Name() {
	case "load", "serve":
		return true
	default:
		return false
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".chemtab" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".chemtab")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: chemtab config create")
	}
}
