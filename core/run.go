package core

import (
	"context"
	"time"

	"github.com/huangsam/tweetstats/internal"
	"github.com/huangsam/tweetstats/internal/contract"
	"github.com/huangsam/tweetstats/schema"
)

// runScoresCore walks the roster in order and scores every company once.
// The first load error aborts the whole run.
func runScoresCore(ctx context.Context, cfg *contract.Config, roster *schema.Roster, mgr contract.StoreManager) (*schema.RunOutput, error) {
	if !shouldSuppressHeader(ctx) {
		internal.LogRunHeader(cfg, roster.Len())
	}

	// --- 0. Begin Run Tracking (if configured) ---
	var historyStore contract.HistoryStore
	if mgr != nil {
		historyStore = mgr.GetHistoryStore()
	}
	if historyStore != nil {
		runID, err := historyStore.BeginRun(time.Now(), cfg.ToParams())
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		} else if runID > 0 {
			ctx = withRunID(ctx, runID)
		}
	}
	runID := getRunID(ctx)

	// --- 1. Scoring Phase ---
	opts := ScoreOptions{MissingText: cfg.MissingText}
	output := &schema.RunOutput{Records: make([]schema.ScoreRecord, 0, roster.Len())}
	for i, company := range roster.Companies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, present, err := ComputeScores(company, cfg.TweetsDir, opts)
		if err != nil {
			return nil, err
		}
		if present {
			output.Archives++
		}
		if cfg.Verbose {
			internal.LogCompanyProgress(i, record)
		}
		if historyStore != nil && runID > 0 {
			if err := historyStore.RecordCompanyScores(runID, time.Now(), record); err != nil {
				contract.LogWarn("Failed to record company scores", err)
			}
		}
		output.Records = append(output.Records, record)
	}

	// --- 2. End Run Tracking ---
	if historyStore != nil && runID > 0 {
		if err := historyStore.EndRun(runID, time.Now(), len(output.Records)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	return output, nil
}
