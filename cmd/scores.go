package cmd

import (
	"github.com/huangsam/tweetstats/core"
	"github.com/huangsam/tweetstats/internal/contract"
	"github.com/spf13/cobra"
)

// scoresCmd scores every company of the roster.
var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Score every roster company before and after its Series A.",
	Long: `Load the company roster, split each tweet archive at the first funding
date and write one summary row per company, in roster order.

Every row carries, for the halves before and after funding:
- Timespan in days and number of tweets
- Tweets per week
- Average tweet length
- Content richness (links, hashtags, images, media, video)
- Interactiveness (likes, retweets, replies, reply flags, mentioned users)

Companies without an archive still get a row, with zero counts and empty metrics.

Examples:
  # Write the default CSV summary
  tweetstats scores

  # Use another roster and archive directory
  tweetstats scores --roster companies.csv --tweets-dir archives

  # Show a table in the terminal
  tweetstats scores --output text

  # Match tables from earlier runs that counted missing text as "None"
  tweetstats scores --missing-text legacy

  # Keep a history of runs in SQLite
  tweetstats scores --history-backend sqlite`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScores(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot score roster", err)
		}
	},
}
