//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/tweetstats/internal/iocache"
	"github.com/huangsam/tweetstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startMySQL starts a MySQL container and returns its connection string.
func startMySQL(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "tweetstats",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = mysqlC.Terminate(ctx) })

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	return fmt.Sprintf("root:secret123@tcp(%s:%s)/tweetstats", host, port.Port())
}

// startPostgres starts a PostgreSQL container and returns its connection string.
func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
}

// exerciseHistoryStore runs a full store cycle against a live database.
func exerciseHistoryStore(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	t.Helper()
	require.NoError(t, iocache.ClearHistory(backend, connStr))

	store, err := iocache.NewHistoryStore(backend, connStr)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	start := time.Now().UTC().Truncate(time.Microsecond)
	runID, err := store.BeginRun(start, map[string]any{"roster": "companies.csv"})
	require.NoError(t, err)
	require.Positive(t, runID)

	pre, freq := 14, 0.5
	require.NoError(t, store.RecordCompanyScores(runID, start, schema.ScoreRecord{
		Handle: "acme", SeriesADate: "2014-03-01", PreTimespan: &pre, AllTweetNum: 1, PreTweetNum: 1, PreFreq: &freq,
	}))
	require.NoError(t, store.RecordCompanyScores(runID, start, schema.ScoreRecord{Handle: "globex", SeriesADate: "2013-11-20"}))
	require.NoError(t, store.EndRun(runID, start.Add(250*time.Millisecond), 2))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.NotNil(t, runs[0].RunDurationMs)
	assert.Equal(t, int32(250), *runs[0].RunDurationMs)
	assert.Equal(t, int32(2), runs[0].TotalCompanies)

	scores, err := store.GetAllCompanyScores()
	require.NoError(t, err)
	require.Len(t, scores, 2)
	require.NotNil(t, scores[0].PreFreq)
	assert.Equal(t, 0.5, *scores[0].PreFreq)
	assert.Nil(t, scores[1].PreTimespan)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, 2, status.TotalCompaniesScored)
}

// exerciseCLI runs the history lifecycle through the binary.
func exerciseCLI(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	t.Helper()
	dir := writeFixture(t)
	env := []string{
		"TWEETSTATS_HISTORY_BACKEND=" + string(backend),
		"TWEETSTATS_HISTORY_DB_CONNECT=" + connStr,
	}

	_, err := runTweetstats(t, dir, env, "history", "clear")
	require.NoError(t, err)

	_, err = runTweetstats(t, dir, env, "history", "migrate")
	require.NoError(t, err)

	_, err = runTweetstats(t, dir, env, "scores")
	require.NoError(t, err)

	out, err := runTweetstats(t, dir, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Runs: 1")
	assert.Contains(t, out, "Total Companies Scored: 2")

	prefix := filepath.Join(dir, "history")
	_, err = runTweetstats(t, dir, env, "history", "export", "--output-file", prefix)
	require.NoError(t, err)
	_, err = os.Stat(prefix + ".company_scores.parquet")
	assert.NoError(t, err)

	_, err = runTweetstats(t, dir, env, "history", "migrate", "--target-version", "0")
	require.NoError(t, err)
}

// TestHistoryWithMySQL tests run history against a MySQL backend.
func TestHistoryWithMySQL(t *testing.T) {
	connStr := startMySQL(t)
	t.Run("store", func(t *testing.T) { exerciseHistoryStore(t, schema.MySQLBackend, connStr) })
	t.Run("cli", func(t *testing.T) { exerciseCLI(t, schema.MySQLBackend, connStr) })
}

// TestHistoryWithPostgres tests run history against a PostgreSQL backend.
func TestHistoryWithPostgres(t *testing.T) {
	connStr := startPostgres(t)
	t.Run("store", func(t *testing.T) { exerciseHistoryStore(t, schema.PostgreSQLBackend, connStr) })
	t.Run("cli", func(t *testing.T) { exerciseCLI(t, schema.PostgreSQLBackend, connStr) })
}
