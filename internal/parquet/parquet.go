// Package parquet provides data structures and functions for exporting tweetstats
// score tables and run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/tweetstats/schema"
	"github.com/parquet-go/parquet-go"
)

// ScoreRow is one company row of the summary table.
// Nullable columns hold the metrics that are undefined for a company.
type ScoreRow struct {
	Handle              string `parquet:"handle,snappy"`
	FundingIntervalDays string `parquet:"funding_interval_days,snappy"`
	SeriesADate         string `parquet:"series_a_date,snappy"`

	PreTimespan  *int64 `parquet:"preA_timespan,optional,snappy"`
	PostTimespan *int64 `parquet:"postA_timespan,optional,snappy"`
	AllTweetNum  int64  `parquet:"all_tweet_num,snappy"`
	PreTweetNum  int64  `parquet:"preA_tweet_num,snappy"`
	PostTweetNum int64  `parquet:"postA_tweet_num,snappy"`

	PreFreq             *float64 `parquet:"preA_tweet_freq,optional,snappy"`
	PostFreq            *float64 `parquet:"postA_tweet_freq,optional,snappy"`
	PreAvgLength        *float64 `parquet:"preA_tweet_avglength,optional,snappy"`
	PostAvgLength       *float64 `parquet:"postA_tweet_avglength,optional,snappy"`
	PreContentRichness  *float64 `parquet:"preA_tweet_content_richness,optional,snappy"`
	PostContentRichness *float64 `parquet:"postA_tweet_content_richness,optional,snappy"`
	PreInteractiveness  *float64 `parquet:"preA_tweet_interactiveness,optional,snappy"`
	PostInteractiveness *float64 `parquet:"postA_tweet_interactiveness,optional,snappy"`
}

// HistoryRun represents a single scoring run with metadata.
// This struct maps to the tweetstats_runs database table.
type HistoryRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, an aborted run has none)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalCompanies is the number of companies scored in this run
	TotalCompanies int32 `parquet:"total_companies,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// CompanyScores represents the stored scores of one company in a run.
// This struct maps to the tweetstats_company_scores database table.
type CompanyScores struct {
	RunID       int64     `parquet:"run_id,snappy"`
	Handle      string    `parquet:"handle,snappy"`
	ScoredAt    time.Time `parquet:"scored_at,snappy"`
	SeriesADate string    `parquet:"series_a_date,snappy"`

	PreTimespan  *int32 `parquet:"preA_timespan,optional,snappy"`
	PostTimespan *int32 `parquet:"postA_timespan,optional,snappy"`
	AllTweetNum  int32  `parquet:"all_tweet_num,snappy"`
	PreTweetNum  int32  `parquet:"preA_tweet_num,snappy"`
	PostTweetNum int32  `parquet:"postA_tweet_num,snappy"`

	PreFreq             *float64 `parquet:"preA_tweet_freq,optional,snappy"`
	PostFreq            *float64 `parquet:"postA_tweet_freq,optional,snappy"`
	PreAvgLength        *float64 `parquet:"preA_tweet_avglength,optional,snappy"`
	PostAvgLength       *float64 `parquet:"postA_tweet_avglength,optional,snappy"`
	PreContentRichness  *float64 `parquet:"preA_tweet_content_richness,optional,snappy"`
	PostContentRichness *float64 `parquet:"postA_tweet_content_richness,optional,snappy"`
	PreInteractiveness  *float64 `parquet:"preA_tweet_interactiveness,optional,snappy"`
	PostInteractiveness *float64 `parquet:"postA_tweet_interactiveness,optional,snappy"`
}

// WriteScoreRowsParquet writes the summary table to a Parquet file.
func WriteScoreRowsParquet(data []ScoreRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteHistoryRunsParquet writes a slice of HistoryRun structs to a Parquet file.
func WriteHistoryRunsParquet(data []HistoryRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteCompanyScoresParquet writes a slice of CompanyScores structs to a Parquet file.
func WriteCompanyScoresParquet(data []CompanyScores, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows to outputPath using a schema inferred from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertScoreRecords converts schema.ScoreRecord to ScoreRow for Parquet export.
func ConvertScoreRecords(records []schema.ScoreRecord) []ScoreRow {
	result := make([]ScoreRow, len(records))
	for i, r := range records {
		result[i] = ScoreRow{
			Handle:              r.Handle,
			FundingIntervalDays: r.FundingIntervalDays,
			SeriesADate:         r.SeriesADate,
			PreTimespan:         widen(r.PreTimespan),
			PostTimespan:        widen(r.PostTimespan),
			AllTweetNum:         int64(r.AllTweetNum),
			PreTweetNum:         int64(r.PreTweetNum),
			PostTweetNum:        int64(r.PostTweetNum),
			PreFreq:             r.PreFreq,
			PostFreq:            r.PostFreq,
			PreAvgLength:        r.PreAvgLength,
			PostAvgLength:       r.PostAvgLength,
			PreContentRichness:  r.PreContentRichness,
			PostContentRichness: r.PostContentRichness,
			PreInteractiveness:  r.PreInteractiveness,
			PostInteractiveness: r.PostInteractiveness,
		}
	}
	return result
}

// ConvertRunRecords converts schema.RunRecord to HistoryRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []HistoryRun {
	result := make([]HistoryRun, len(records))
	for i, record := range records {
		result[i] = HistoryRun{
			RunID:          record.RunID,
			StartTime:      record.StartTime,
			EndTime:        record.EndTime,
			RunDurationMs:  record.RunDurationMs,
			TotalCompanies: record.TotalCompanies,
			ConfigParams:   record.ConfigParams,
		}
	}
	return result
}

// ConvertCompanyScoresRecords converts schema.CompanyScoresRecord to CompanyScores for Parquet export.
func ConvertCompanyScoresRecords(records []schema.CompanyScoresRecord) []CompanyScores {
	result := make([]CompanyScores, len(records))
	for i, r := range records {
		result[i] = CompanyScores{
			RunID:               r.RunID,
			Handle:              r.Handle,
			ScoredAt:            r.ScoredAt,
			SeriesADate:         r.SeriesADate,
			PreTimespan:         r.PreTimespan,
			PostTimespan:        r.PostTimespan,
			AllTweetNum:         r.AllTweetNum,
			PreTweetNum:         r.PreTweetNum,
			PostTweetNum:        r.PostTweetNum,
			PreFreq:             r.PreFreq,
			PostFreq:            r.PostFreq,
			PreAvgLength:        r.PreAvgLength,
			PostAvgLength:       r.PostAvgLength,
			PreContentRichness:  r.PreContentRichness,
			PostContentRichness: r.PostContentRichness,
			PreInteractiveness:  r.PreInteractiveness,
			PostInteractiveness: r.PostInteractiveness,
		}
	}
	return result
}

func widen(v *int) *int64 {
	if v == nil {
		return nil
	}
	w := int64(*v)
	return &w
}
