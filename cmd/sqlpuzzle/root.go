package main

import (
	"log"

	"github.com/spf13/cobra"
)

var (
	// Set during PersistentPreRunE
	cfg *Config

	// Persistent flags
	cfgFile   string
	dialect   string
	statement string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "sqlpuzzle",
	Short: "Render sql fragments from YAML documents",
	Long: `sqlpuzzle - sql fragment builder

Reads a YAML document describing columns, tables (with joins), conditions
and ordering, builds the fragments and prints the rendered sql.  Duplicate
fragments collapse and redundant joins are minimized.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		loaded, err := ResolveConfig(cfgFile, dialect, statement)
		if err != nil {
			return err
		}
		cfg = loaded

		if verbose {
			log.Printf(
				"dialect=%s statement=%s config=%q",
				cfg.Dialect,
				cfg.Statement,
				cfgFile)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&dialect, "dialect", "", "sql dialect: mysql, postgres or sqlite")
	rootCmd.PersistentFlags().StringVar(&statement, "statement", "", "output: select or fragments")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log the effective configuration")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(relationsCmd)
}
