package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/tweetstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// sampleRecord has every optional field set on the post side only.
func sampleRecord(handle string) schema.ScoreRecord {
	return schema.ScoreRecord{
		Handle:              handle,
		FundingIntervalDays: "412",
		SeriesADate:         "2014-03-01",
		PostTimespan:        intPtr(30),
		AllTweetNum:         2,
		PostTweetNum:        2,
		PostFreq:            floatPtr(7.0 / 15.0),
		PostAvgLength:       floatPtr(11.5),
		PostContentRichness: floatPtr(1.5),
		PostInteractiveness: floatPtr(4),
	}
}

func newSQLiteStore(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	store, err := NewHistoryStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*HistoryStoreImpl)
}

func TestHistoryStore_NoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	runID, err := store.BeginRun(time.Now(), map[string]any{"roster": "companies.csv"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	assert.NoError(t, store.EndRun(1, time.Now(), 10))
	assert.NoError(t, store.RecordCompanyScores(1, time.Now(), sampleRecord("acme")))

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestHistoryStore_UnsupportedBackend(t *testing.T) {
	_, err := NewHistoryStore(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestHistoryStore_SQLiteRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)

	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	runID, err := store.BeginRun(start, map[string]any{"missing_text": "empty"})
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	empty := schema.ScoreRecord{Handle: "globex", FundingIntervalDays: "87", SeriesADate: "2013-11-20"}
	require.NoError(t, store.RecordCompanyScores(runID, start.Add(time.Second), sampleRecord("acme")))
	require.NoError(t, store.RecordCompanyScores(runID, start.Add(2*time.Second), empty))
	require.NoError(t, store.EndRun(runID, start.Add(1500*time.Millisecond), 2))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.True(t, start.Equal(run.StartTime))
	require.NotNil(t, run.EndTime)
	assert.True(t, start.Add(1500*time.Millisecond).Equal(*run.EndTime))
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(1500), *run.RunDurationMs)
	assert.Equal(t, int32(2), run.TotalCompanies)
	require.NotNil(t, run.ConfigParams)
	assert.JSONEq(t, `{"missing_text":"empty"}`, *run.ConfigParams)

	scores, err := store.GetAllCompanyScores()
	require.NoError(t, err)
	require.Len(t, scores, 2)

	acme := scores[0]
	assert.Equal(t, "acme", acme.Handle)
	assert.Equal(t, "2014-03-01", acme.SeriesADate)
	assert.Nil(t, acme.PreTimespan)
	require.NotNil(t, acme.PostTimespan)
	assert.Equal(t, int32(30), *acme.PostTimespan)
	assert.Equal(t, int32(2), acme.AllTweetNum)
	assert.Nil(t, acme.PreFreq)
	require.NotNil(t, acme.PostFreq)
	assert.Equal(t, 7.0/15.0, *acme.PostFreq, "floats survive the database exactly")
	require.NotNil(t, acme.PostInteractiveness)
	assert.Equal(t, 4.0, *acme.PostInteractiveness)

	globex := scores[1]
	assert.Equal(t, "globex", globex.Handle)
	assert.Zero(t, globex.AllTweetNum)
	assert.Nil(t, globex.PostTimespan)
	assert.Nil(t, globex.PostAvgLength)
	assert.True(t, start.Add(2*time.Second).Equal(globex.ScoredAt))
}

func TestHistoryStore_RepeatedHandle(t *testing.T) {
	store := newSQLiteStore(t)

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordCompanyScores(runID, time.Now(), sampleRecord("acme")))
	require.NoError(t, store.RecordCompanyScores(runID, time.Now(), sampleRecord("acme")))

	scores, err := store.GetAllCompanyScores()
	require.NoError(t, err)
	assert.Len(t, scores, 2)
}

func TestHistoryStore_EndRunUnknownID(t *testing.T) {
	store := newSQLiteStore(t)
	err := store.EndRun(99, time.Now(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run 99")
}

func TestHistoryStore_GetStatus(t *testing.T) {
	store := newSQLiteStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)
	assert.Equal(t, int64(0), status.TableSizes[runsTable])

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 3 {
		start := first.Add(time.Duration(i) * time.Hour)
		runID, err := store.BeginRun(start, nil)
		require.NoError(t, err)
		require.NoError(t, store.RecordCompanyScores(runID, start, sampleRecord("acme")))
		require.NoError(t, store.RecordCompanyScores(runID, start, sampleRecord("initech")))
		require.NoError(t, store.EndRun(runID, start.Add(time.Minute), 2))
	}

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalRuns)
	assert.Equal(t, int64(3), status.LastRunID)
	assert.True(t, first.Add(2*time.Hour).Equal(status.LastRunTime))
	assert.True(t, first.Equal(status.OldestRunTime))
	assert.Equal(t, 6, status.TotalCompaniesScored)
	assert.Equal(t, int64(3), status.TableSizes[runsTable])
	assert.Equal(t, int64(6), status.TableSizes[companyScoresTable])
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		wantErr bool
	}{
		{"simple", "tweetstats_runs", false},
		{"leading underscore", "_scores", false},
		{"digits", "runs2", false},
		{"empty", "", true},
		{"leading digit", "2runs", true},
		{"space", "runs table", true},
		{"injection", "runs; DROP TABLE x", true},
		{"quote", "runs\"", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.table)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`tweetstats_runs`", quoteTableName(runsTable, schema.MySQLBackend))
	assert.Equal(t, `"tweetstats_runs"`, quoteTableName(runsTable, schema.PostgreSQLBackend))
	assert.Equal(t, `"tweetstats_runs"`, quoteTableName(runsTable, schema.SQLiteBackend))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"$1", "$2", "$3"}, placeholders(3, schema.PostgreSQLBackend))
	assert.Equal(t, []string{"?", "?"}, placeholders(2, schema.MySQLBackend))
	assert.Equal(t, []string{"?"}, placeholders(1, schema.SQLiteBackend))
	assert.Empty(t, placeholders(0, schema.SQLiteBackend))
}

func TestCreateQueriesMatchBackend(t *testing.T) {
	assert.Contains(t, getCreateRunsQuery(schema.MySQLBackend), "AUTO_INCREMENT")
	assert.Contains(t, getCreateRunsQuery(schema.PostgreSQLBackend), "BIGSERIAL")
	assert.Contains(t, getCreateRunsQuery(schema.SQLiteBackend), "AUTOINCREMENT")
	assert.Contains(t, getCreateCompanyScoresQuery(schema.PostgreSQLBackend), "DOUBLE PRECISION")
	assert.Contains(t, getCreateCompanyScoresQuery(schema.SQLiteBackend), "pre_interactiveness REAL")
}
