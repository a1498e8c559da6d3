// Package loader reads the company roster and per-company tweet archives from flat files.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/huangsam/tweetstats/schema"
)

// RosterColumns names the roster columns that carry each company attribute.
type RosterColumns struct {
	Handle   string
	Funding  string
	Interval string // optional
}

// DefaultRosterColumns returns the column names of the labeled companies file.
func DefaultRosterColumns() RosterColumns {
	return RosterColumns{
		Handle:   schema.DefaultHandleColumn,
		Funding:  schema.DefaultFundingColumn,
		Interval: schema.DefaultIntervalColumn,
	}
}

// fundingLayouts lists the accepted formats of the funding timestamp, tried in order.
var fundingLayouts = []string{
	schema.SeriesADateLayout,
	schema.TweetTimestampLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"1/2/2006",
}

// LoadRoster reads the comma-delimited roster file once and returns it in file order.
func LoadRoster(path string, cols RosterColumns) (*schema.Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return schema.NewRoster(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read roster header: %w", err)
	}
	index := headerIndex(header)

	handleIdx, ok := index[cols.Handle]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrMissingColumn, cols.Handle, path)
	}
	fundingIdx, ok := index[cols.Funding]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrMissingColumn, cols.Funding, path)
	}
	intervalIdx, hasInterval := index[cols.Interval]

	var companies []schema.Company
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read roster %s: %w", path, err)
		}

		handle := strings.TrimSpace(cell(row, handleIdx))
		if handle == "" {
			line, col := reader.FieldPos(0)
			return nil, &ParseError{File: path, Line: line, Column: col, Field: cols.Handle, Err: errors.New("empty handle")}
		}

		funding, err := parseFundingTime(cell(row, fundingIdx))
		if err != nil {
			line, col := fieldPos(reader, row, fundingIdx)
			return nil, &ParseError{File: path, Line: line, Column: col, Field: cols.Funding, Err: err}
		}

		company := schema.Company{Handle: handle, FundingTime: funding}
		if hasInterval {
			company.FundingIntervalDays = strings.TrimSpace(cell(row, intervalIdx))
		}
		companies = append(companies, company)
	}

	return schema.NewRoster(companies), nil
}

// parseFundingTime parses a funding timestamp in any of the accepted layouts.
// Offsets are folded into UTC, the zone tweet timestamps are read in.
func parseFundingTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("empty funding date")
	}
	for _, layout := range fundingLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized funding date %q", raw)
}

// headerIndex maps each trimmed header name to its first position.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	return index
}

// cell returns the value at idx, or "" when the row is short.
func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

// fieldPos reports the position of a cell, falling back to the end of a short row.
func fieldPos(reader *csv.Reader, row []string, idx int) (int, int) {
	if idx >= len(row) {
		idx = len(row) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return reader.FieldPos(idx)
}
