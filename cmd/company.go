package cmd

import (
	"errors"
	"strings"

	"github.com/huangsam/tweetstats/core"
	"github.com/huangsam/tweetstats/internal/contract"
	"github.com/huangsam/tweetstats/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// companySetup runs the shared setup and then points output at stdout
// unless an output file was asked for explicitly.
func companySetup(cmd *cobra.Command, args []string) error {
	if err := sharedSetup(rootCtx, cmd, args); err != nil {
		return err
	}
	if strings.TrimSpace(viper.GetString("output-file")) == "" {
		if cfg.Output == schema.ParquetOut {
			return errors.New("parquet output of a single company needs --output-file")
		}
		cfg.OutputFile = ""
	}
	return nil
}

// companyCmd scores one company of the roster.
var companyCmd = &cobra.Command{
	Use:   "company <handle>",
	Short: "Score a single roster company.",
	Long: `Score one company of the roster and print its summary row.

The handle must appear in the roster: its funding date decides where the
tweet archive is split. Output goes to stdout unless --output-file is set.

Examples:
  # Print one company as CSV
  tweetstats company acme

  # Pretty table
  tweetstats company acme --output text`,
	Args:    cobra.ExactArgs(1),
	PreRunE: companySetup,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteCompany(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot score company", err)
		}
	},
}
