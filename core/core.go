// Package core has core logic for splitting tweet histories and scoring companies.
package core

import (
	"context"
	"time"

	"github.com/huangsam/tweetstats/internal"
	"github.com/huangsam/tweetstats/internal/contract"
	"github.com/huangsam/tweetstats/internal/loader"
	"github.com/huangsam/tweetstats/internal/outwriter"
	"github.com/huangsam/tweetstats/schema"
)

// ExecuteScores scores the whole roster and writes the summary table once.
// It serves as the main entry point for the 'scores' command.
func ExecuteScores(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	output, duration, err := GetRosterScores(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if err := outwriter.NewOutWriter().WriteScores(output.Records, cfg, duration); err != nil {
		return err
	}
	if !shouldSuppressHeader(ctx) {
		internal.LogRunSummary(output, cfg.OutputFile)
	}
	return nil
}

// ExecuteCompany scores a single roster company and prints its record.
// It serves as the main entry point for the 'company' command.
func ExecuteCompany(ctx context.Context, cfg *contract.Config, handle string) error {
	start := time.Now()
	if !shouldSuppressHeader(ctx) {
		internal.LogCompanyHeader(cfg, handle)
	}
	record, err := GetCompanyScores(ctx, cfg, handle)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteScores([]schema.ScoreRecord{record}, cfg, time.Since(start))
}

// GetRosterScores loads the roster and scores every company without writing any output.
func GetRosterScores(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*schema.RunOutput, time.Duration, error) {
	start := time.Now()
	roster, err := loader.LoadRoster(cfg.RosterPath, rosterColumns(cfg))
	if err != nil {
		return nil, 0, err
	}
	output, err := runScoresCore(ctx, cfg, roster, mgr)
	if err != nil {
		return nil, 0, err
	}
	return output, time.Since(start), nil
}

// GetCompanyScores loads the roster and scores the company with the given handle.
// It returns schema.ErrUnknownHandle when the handle is not in the roster.
func GetCompanyScores(ctx context.Context, cfg *contract.Config, handle string) (schema.ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return schema.ScoreRecord{}, err
	}
	roster, err := loader.LoadRoster(cfg.RosterPath, rosterColumns(cfg))
	if err != nil {
		return schema.ScoreRecord{}, err
	}
	if _, err := roster.LookupFundingTime(handle); err != nil {
		return schema.ScoreRecord{}, err
	}
	company, _ := roster.Lookup(handle)
	record, _, err := ComputeScores(company, cfg.TweetsDir, ScoreOptions{MissingText: cfg.MissingText})
	return record, err
}

// rosterColumns maps the configured column names onto the loader's column set.
func rosterColumns(cfg *contract.Config) loader.RosterColumns {
	return loader.RosterColumns{
		Handle:   cfg.HandleColumn,
		Funding:  cfg.FundingColumn,
		Interval: cfg.IntervalColumn,
	}
}
