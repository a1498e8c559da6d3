package core

import (
	"fmt"

	"github.com/huangsam/tweetstats/internal/loader"
	"github.com/huangsam/tweetstats/schema"
)

// ScoreOptions tunes how a company's tweets are measured.
type ScoreOptions struct {
	MissingText schema.MissingTextPolicy
}

// ComputeScores loads a company's archive from tweetsDir and builds its ScoreRecord.
// A missing archive is not an error: the record then carries zero counts and no metrics.
func ComputeScores(company schema.Company, tweetsDir string, opts ScoreOptions) (schema.ScoreRecord, bool, error) {
	tweets, present, err := loader.LoadTweets(tweetsDir, company.Handle)
	if err != nil {
		return schema.ScoreRecord{}, false, fmt.Errorf("failed to load tweets for %s: %w", company.Handle, err)
	}
	return scoreTweets(company, tweets, present, opts), present, nil
}

// scoreTweets splits the tweets at the funding event and measures both halves.
func scoreTweets(company schema.Company, tweets []schema.Tweet, present bool, opts ScoreOptions) schema.ScoreRecord {
	event := company.FundingTime
	pre, post := SplitByEvent(tweets, present, event)
	preSpan := Timespan(pre, event)
	postSpan := Timespan(post, event)

	return schema.ScoreRecord{
		Handle:              company.Handle,
		FundingIntervalDays: company.FundingIntervalDays,

		SeriesADate:  event.Format(schema.SeriesADateLayout),
		PreTimespan:  preSpan,
		PostTimespan: postSpan,
		AllTweetNum:  len(tweets),
		PreTweetNum:  Count(pre),
		PostTweetNum: Count(post),

		PreFreq:             Frequency(pre, preSpan),
		PostFreq:            Frequency(post, postSpan),
		PreAvgLength:        AvgLength(pre, opts.MissingText),
		PostAvgLength:       AvgLength(post, opts.MissingText),
		PreContentRichness:  ContentRichness(pre),
		PostContentRichness: ContentRichness(post),
		PreInteractiveness:  Interactivity(pre),
		PostInteractiveness: Interactivity(post),
	}
}
