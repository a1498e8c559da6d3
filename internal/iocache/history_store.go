package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/tweetstats/internal/contract"
	"github.com/huangsam/tweetstats/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names for run history.
const (
	runsTable          = "tweetstats_runs"
	companyScoresTable = "tweetstats_company_scores"
)

// historyTables lists every table owned by the history store.
var historyTables = []string{runsTable, companyScoresTable}

// companyScoreColumns is the column order used for inserts and selects.
var companyScoreColumns = []string{
	"run_id", "handle", "scored_at", "series_a_date",
	"pre_timespan", "post_timespan", "all_tweet_num", "pre_tweet_num", "post_tweet_num",
	"pre_freq", "post_freq", "pre_avg_length", "post_avg_length",
	"pre_content_richness", "post_content_richness", "pre_interactiveness", "post_interactiveness",
}

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
// The none backend yields a store whose writes are no-ops.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDatabase(backend, connStr)
	if err != nil {
		return nil, err
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// openDatabase opens and pings a connection for the backend.
func openDatabase(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	driverName, err := driverFor(backend)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		dsn, err := mysql.ParseDSN(connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse MySQL connection string: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}
		dsn.ParseTime = true
		dsn.MultiStatements = true // migration files hold several statements
		db, err = sql.Open(driverName, dsn.FormatDSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=secret dbname=postgres
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}
	return db, nil
}

// createHistoryTables creates the run history tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{companyScoresTable, getCreateCompanyScoresQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for tweetstats_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_companies INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_companies INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_companies INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateCompanyScoresQuery returns the CREATE TABLE query for tweetstats_company_scores.
// A roster may repeat a handle, so rows are keyed by an own ID rather than (run_id, handle).
func getCreateCompanyScoresQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(companyScoresTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				score_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_id BIGINT NOT NULL,
				handle VARCHAR(255) NOT NULL,
				scored_at DATETIME(6) NOT NULL,
				series_a_date VARCHAR(10) NOT NULL,
				pre_timespan INT,
				post_timespan INT,
				all_tweet_num INT NOT NULL,
				pre_tweet_num INT NOT NULL,
				post_tweet_num INT NOT NULL,
				pre_freq DOUBLE,
				post_freq DOUBLE,
				pre_avg_length DOUBLE,
				post_avg_length DOUBLE,
				pre_content_richness DOUBLE,
				post_content_richness DOUBLE,
				pre_interactiveness DOUBLE,
				post_interactiveness DOUBLE
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				score_id BIGSERIAL PRIMARY KEY,
				run_id BIGINT NOT NULL,
				handle TEXT NOT NULL,
				scored_at TIMESTAMPTZ NOT NULL,
				series_a_date TEXT NOT NULL,
				pre_timespan INT,
				post_timespan INT,
				all_tweet_num INT NOT NULL,
				pre_tweet_num INT NOT NULL,
				post_tweet_num INT NOT NULL,
				pre_freq DOUBLE PRECISION,
				post_freq DOUBLE PRECISION,
				pre_avg_length DOUBLE PRECISION,
				post_avg_length DOUBLE PRECISION,
				pre_content_richness DOUBLE PRECISION,
				post_content_richness DOUBLE PRECISION,
				pre_interactiveness DOUBLE PRECISION,
				post_interactiveness DOUBLE PRECISION
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				score_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_id INTEGER NOT NULL,
				handle TEXT NOT NULL,
				scored_at TEXT NOT NULL,
				series_a_date TEXT NOT NULL,
				pre_timespan INTEGER,
				post_timespan INTEGER,
				all_tweet_num INTEGER NOT NULL,
				pre_tweet_num INTEGER NOT NULL,
				post_tweet_num INTEGER NOT NULL,
				pre_freq REAL,
				post_freq REAL,
				pre_avg_length REAL,
				post_avg_length REAL,
				pre_content_richness REAL,
				post_content_richness REAL,
				pre_interactiveness REAL,
				post_interactiveness REAL
			);
		`, quotedTableName)
	}
}

// disabled reports whether writes should be skipped.
func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

// BeginRun creates a new run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	if hs.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	ph := placeholders(2, hs.backend)

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (%s, %s) RETURNING run_id`, quotedTableName, ph[0], ph[1])
		err = hs.db.QueryRow(query, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (%s, %s)`, quotedTableName, ph[0], ph[1])
		var result sql.Result
		result, err = hs.db.Exec(query, formatTime(startTime, hs.backend), string(configJSON))
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// EndRun updates the run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalCompanies int) error {
	if hs.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	ph := placeholders(4, hs.backend)

	startTS := newTimeScanner(hs.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, ph[0])
	if err := hs.db.QueryRow(query, runID).Scan(startTS.dest()); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	startTime, err := startTS.get()
	if err != nil {
		return err
	}
	if startTime == nil {
		return fmt.Errorf("run %d has no start_time", runID)
	}

	durationMs := endTime.Sub(*startTime).Milliseconds()

	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_companies = %s WHERE run_id = %s`,
		quotedTableName, ph[0], ph[1], ph[2], ph[3])
	if _, err := hs.db.Exec(updateQuery, formatTime(endTime, hs.backend), durationMs, totalCompanies, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// RecordCompanyScores stores the score record of one company.
func (hs *HistoryStoreImpl) RecordCompanyScores(runID int64, scoredAt time.Time, record schema.ScoreRecord) error {
	if hs.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(companyScoresTable, hs.backend)
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quotedTableName,
		strings.Join(companyScoreColumns, ", "),
		strings.Join(placeholders(len(companyScoreColumns), hs.backend), ", "))

	args := []any{
		runID, record.Handle, formatTime(scoredAt, hs.backend), record.SeriesADate,
		nullableInt(record.PreTimespan), nullableInt(record.PostTimespan),
		record.AllTweetNum, record.PreTweetNum, record.PostTweetNum,
		nullableFloat(record.PreFreq), nullableFloat(record.PostFreq),
		nullableFloat(record.PreAvgLength), nullableFloat(record.PostAvgLength),
		nullableFloat(record.PreContentRichness), nullableFloat(record.PostContentRichness),
		nullableFloat(record.PreInteractiveness), nullableFloat(record.PostInteractiveness),
	}
	if _, err := hs.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert scores for %s: %w", record.Handle, err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.disabled() {
		return status, nil
	}

	quotedRuns := quoteTableName(runsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		lastTS := newTimeScanner(hs.backend)
		lastRunQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quotedRuns)
		if err := hs.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, lastTS.dest()); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		lastRunTime, err := lastTS.get()
		if err != nil {
			return status, err
		}
		if lastRunTime != nil {
			status.LastRunTime = *lastRunTime
		}

		oldestTS := newTimeScanner(hs.backend)
		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quotedRuns)
		if err := hs.db.QueryRow(oldestRunQuery).Scan(oldestTS.dest()); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		oldestRunTime, err := oldestTS.get()
		if err != nil {
			return status, err
		}
		if oldestRunTime != nil {
			status.OldestRunTime = *oldestRunTime
		}

		companiesQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_companies), 0) FROM %s", quotedRuns)
		if err := hs.db.QueryRow(companiesQuery).Scan(&status.TotalCompaniesScored); err != nil {
			return status, fmt.Errorf("failed to get total companies scored: %w", err)
		}
	}

	for _, table := range historyTables {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))
		if err := hs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves all runs from the store.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT run_id, start_time, end_time, run_duration_ms, total_companies, config_params FROM %s ORDER BY run_id",
		quoteTableName(runsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		startTS := newTimeScanner(hs.backend)
		endTS := newTimeScanner(hs.backend)
		if err := rows.Scan(&record.RunID, startTS.dest(), endTS.dest(), &record.RunDurationMs, &record.TotalCompanies, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		startTime, err := startTS.get()
		if err != nil {
			return nil, err
		}
		if startTime != nil {
			record.StartTime = *startTime
		}
		if record.EndTime, err = endTS.get(); err != nil {
			return nil, err
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllCompanyScores retrieves all company scores from the store.
func (hs *HistoryStoreImpl) GetAllCompanyScores() ([]schema.CompanyScoresRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY run_id, score_id",
		strings.Join(companyScoreColumns, ", "), quoteTableName(companyScoresTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query company scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.CompanyScoresRecord
	for rows.Next() {
		var r schema.CompanyScoresRecord
		scoredTS := newTimeScanner(hs.backend)
		if err := rows.Scan(&r.RunID, &r.Handle, scoredTS.dest(), &r.SeriesADate,
			&r.PreTimespan, &r.PostTimespan, &r.AllTweetNum, &r.PreTweetNum, &r.PostTweetNum,
			&r.PreFreq, &r.PostFreq, &r.PreAvgLength, &r.PostAvgLength,
			&r.PreContentRichness, &r.PostContentRichness, &r.PreInteractiveness, &r.PostInteractiveness); err != nil {
			return nil, fmt.Errorf("failed to scan company scores: %w", err)
		}
		scoredAt, err := scoredTS.get()
		if err != nil {
			return nil, err
		}
		if scoredAt != nil {
			r.ScoredAt = *scoredAt
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating company scores: %w", err)
	}
	return results, nil
}

// nullableInt turns an absent value into SQL NULL.
func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// nullableFloat turns an absent value into SQL NULL.
func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
