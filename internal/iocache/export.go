package iocache

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/tweetstats/internal/contract"
	"github.com/huangsam/tweetstats/internal/parquet"
)

// Suffixes appended to the export prefix.
const (
	runsExportSuffix          = ".runs.parquet"
	companyScoresExportSuffix = ".company_scores.parquet"
)

// ExecuteHistoryExport exports the run history of the global manager to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	return exportHistory(Manager.GetHistoryStore(), outputFile, os.Stdout)
}

// exportHistory writes every run and company score of the store next to outputFile.
func exportHistory(store contract.HistoryStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history tracking is disabled. Set --history-backend to sqlite, mysql or postgresql")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total company records: %d\n", status.TableSizes[companyScoresTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	scores, err := store.GetAllCompanyScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve company scores: %w", err)
	}

	runsFile := outputFile + runsExportSuffix
	parquetRuns := parquet.ConvertRunRecords(runs)
	if err := parquet.WriteHistoryRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	scoresFile := outputFile + companyScoresExportSuffix
	parquetScores := parquet.ConvertCompanyScoresRecords(scores)
	if err := parquet.WriteCompanyScoresParquet(parquetScores, scoresFile); err != nil {
		return fmt.Errorf("failed to write company scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d company records to: %s\n", len(parquetScores), scoresFile)

	return nil
}
