package schema

import "time"

// RunRecord represents a row from the tweetstats_runs table.
type RunRecord struct {
	RunID          int64
	StartTime      time.Time
	EndTime        *time.Time
	RunDurationMs  *int32
	TotalCompanies int32
	ConfigParams   *string
}

// CompanyScoresRecord represents a row from the tweetstats_company_scores table.
type CompanyScoresRecord struct {
	RunID       int64
	Handle      string
	ScoredAt    time.Time
	SeriesADate string

	PreTimespan  *int32
	PostTimespan *int32
	AllTweetNum  int32
	PreTweetNum  int32
	PostTweetNum int32

	PreFreq             *float64
	PostFreq            *float64
	PreAvgLength        *float64
	PostAvgLength       *float64
	PreContentRichness  *float64
	PostContentRichness *float64
	PreInteractiveness  *float64
	PostInteractiveness *float64
}
