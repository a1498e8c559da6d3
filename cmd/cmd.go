// Package cmd defines the command-line interface for tweetstats.
package cmd

import (
	"github.com/huangsam/tweetstats/internal/contract"
	"github.com/huangsam/tweetstats/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(companyCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("roster", contract.DefaultRosterPath, "Path to the company roster CSV")
	rootCmd.PersistentFlags().String("tweets-dir", contract.DefaultTweetsDir, "Directory holding one <handle>.csv tweet archive per company")
	rootCmd.PersistentFlags().String("handle-column", schema.DefaultHandleColumn, "Roster column with the Twitter handle")
	rootCmd.PersistentFlags().String("funding-column", schema.DefaultFundingColumn, "Roster column with the first funding date")
	rootCmd.PersistentFlags().String("interval-column", schema.DefaultIntervalColumn, "Roster column with the first-to-last funding interval")
	rootCmd.PersistentFlags().String("output", string(schema.CSVOut), "Output format: csv or text or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Path to write output to ('-' for stdout)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns in text output")
	rootCmd.PersistentFlags().String("missing-text", string(schema.EmptyTextPolicy), "How tweets without text count toward average length: empty or legacy")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print a progress line for every company")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
