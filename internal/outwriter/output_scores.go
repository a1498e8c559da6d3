package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/huangsam/tweetstats/internal/contract"
	"github.com/huangsam/tweetstats/internal/parquet"
	"github.com/huangsam/tweetstats/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteScoreResults outputs the summary table, dispatching based on the output format configured.
func WriteScoreResults(records []schema.ScoreRecord, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, schema.EnrichScores(records))
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoresCSV(w, records)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeScoresParquet(records, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoresTable(w, records, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writeScoresCSV writes the summary table with exactly the score columns, in order.
func writeScoresCSV(w io.Writer, records []schema.ScoreRecord) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(schema.ScoreColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.SeriesADate,
			csvInt(r.PreTimespan),
			csvInt(r.PostTimespan),
			strconv.Itoa(r.AllTweetNum),
			strconv.Itoa(r.PreTweetNum),
			strconv.Itoa(r.PostTweetNum),
			csvFloat(r.PreFreq),
			csvFloat(r.PostFreq),
			csvFloat(r.PreAvgLength),
			csvFloat(r.PostAvgLength),
			csvFloat(r.PreContentRichness),
			csvFloat(r.PostContentRichness),
			csvFloat(r.PreInteractiveness),
			csvFloat(r.PostInteractiveness),
		}
		if err := csvWriter.Write(row); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// writeScoresParquet writes the summary table, handle included, to a Parquet file.
func writeScoresParquet(records []schema.ScoreRecord, outputFile string) error {
	if outputFile == "" {
		return errors.New("parquet output requires --output-file")
	}
	if dir := filepath.Dir(outputFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := parquet.WriteScoreRowsParquet(parquet.ConvertScoreRecords(records), outputFile); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", outputFile)
	return nil
}

// writeScoresTable generates and writes the human-readable table.
func writeScoresTable(writer io.Writer, records []schema.ScoreRecord, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtInt := createFormatters(cfg.Precision)
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	table.Header([]string{
		"#", "Handle", "Series A", "Pre Days", "Post Days",
		"Tweets", "Pre", "Post", "Pre Freq", "Post Freq", "Trend",
	})

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	handleWidth := GetMaxTableHandleWidth(cfg)
	archived := 0
	var data [][]string
	for i, r := range records {
		if r.AllTweetNum > 0 {
			archived++
		}
		trend := schema.GetTrend(r.PreFreq, r.PostFreq)
		label := string(trend)
		if cfg.UseColors {
			label = contract.GetColorTrend(trend)
		}
		data = append(data, []string{
			strconv.Itoa(i),
			contract.TruncatePath(r.Handle, handleWidth),
			r.SeriesADate,
			fmtInt(r.PreTimespan),
			fmtInt(r.PostTimespan),
			strconv.Itoa(r.AllTweetNum),
			strconv.Itoa(r.PreTweetNum),
			strconv.Itoa(r.PostTweetNum),
			fmtFloat(r.PreFreq),
			fmtFloat(r.PostFreq),
			label,
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing %d companies (%d with tweets)\n", len(records), archived); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Scoring completed in %v. History backend: %s\n", duration, cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}
