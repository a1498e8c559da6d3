package internal

import (
	"fmt"

	"github.com/huangsam/tweetstats/schema"
)

// LogCompanyProgress prints the per-company line of a verbose run:
// roster index, handle, funding interval and the computed scores.
func LogCompanyProgress(index int, record schema.ScoreRecord) {
	_, _ = fmt.Fprintf(headerOut, "%d %s %s %s\n", index, record.Handle, record.FundingIntervalDays, FormatScores(record))
}

// LogRunSummary prints the closing line of a scoring run.
func LogRunSummary(output *schema.RunOutput, outputFile string) {
	dest := outputFile
	if dest == "" {
		dest = "stdout"
	}
	_, _ = fmt.Fprintf(headerOut, "✅ Scored %d companies (%d with archives) → %s\n", len(output.Records), output.Archives, dest)
}

// FormatScores renders the metric fields of a record as key=value pairs.
// Absent values render as None.
func FormatScores(r schema.ScoreRecord) string {
	return fmt.Sprintf(
		"{series_a_date=%s preA_timespan=%s postA_timespan=%s all_tweet_num=%d preA_tweet_num=%d postA_tweet_num=%d "+
			"preA_tweet_freq=%s postA_tweet_freq=%s preA_tweet_avglength=%s postA_tweet_avglength=%s "+
			"preA_tweet_content_richness=%s postA_tweet_content_richness=%s "+
			"preA_tweet_interactiveness=%s postA_tweet_interactiveness=%s}",
		r.SeriesADate, fmtInt(r.PreTimespan), fmtInt(r.PostTimespan),
		r.AllTweetNum, r.PreTweetNum, r.PostTweetNum,
		fmtFloat(r.PreFreq), fmtFloat(r.PostFreq),
		fmtFloat(r.PreAvgLength), fmtFloat(r.PostAvgLength),
		fmtFloat(r.PreContentRichness), fmtFloat(r.PostContentRichness),
		fmtFloat(r.PreInteractiveness), fmtFloat(r.PostInteractiveness),
	)
}

func fmtInt(v *int) string {
	if v == nil {
		return "None"
	}
	return fmt.Sprintf("%d", *v)
}

func fmtFloat(v *float64) string {
	if v == nil {
		return "None"
	}
	return fmt.Sprintf("%g", *v)
}
