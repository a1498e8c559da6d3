package contract

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/tweetstats/schema"
)

// Default values for configuration.
const (
	DefaultRosterPath  = "data/processed/companies_2014_labeled.csv"
	DefaultTweetsDir   = "data/tweets"
	DefaultOutputFile  = "data/processed/company_tweets_stats_all.csv"
	DefaultParquetFile = "data/processed/company_tweets_stats_all.parquet"
	DefaultPrecision   = 2
	MaxPrecision       = 4
)

// StdoutPath forces output to stdout even for formats that default to a file.
const StdoutPath = "-"

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a scoring run.
// This struct is the "final, validated" config.
type Config struct {
	RosterPath string
	TweetsDir  string

	HandleColumn   string
	FundingColumn  string
	IntervalColumn string

	Output      schema.OutputMode
	OutputFile  string
	Precision   int
	MissingText schema.MissingTextPolicy

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	Width     int // Terminal width override (0 = auto-detect)
	UseColors bool
	Verbose   bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	Roster    string `mapstructure:"roster"`
	TweetsDir string `mapstructure:"tweets-dir"`

	HandleColumn   string `mapstructure:"handle-column"`
	FundingColumn  string `mapstructure:"funding-column"`
	IntervalColumn string `mapstructure:"interval-column"`

	Output      string `mapstructure:"output"`
	OutputFile  string `mapstructure:"output-file"`
	Precision   int    `mapstructure:"precision"`
	MissingText string `mapstructure:"missing-text"`

	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	Width   int    `mapstructure:"width"`
	Color   string `mapstructure:"color"`
	Verbose bool   `mapstructure:"verbose"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ToParams returns the config fields worth recording next to a run.
func (c *Config) ToParams() map[string]any {
	params := map[string]any{
		"roster":       c.RosterPath,
		"tweets_dir":   c.TweetsDir,
		"missing_text": string(c.MissingText),
		"output":       string(c.Output),
	}
	columns := map[string]any{
		"handle_column":   c.HandleColumn,
		"funding_column":  c.FundingColumn,
		"interval_column": c.IntervalColumn,
	}
	maps.Copy(params, columns)
	return params
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateHistoryBackend(cfg, input); err != nil {
		return err
	}
	if err := resolveOutputFile(cfg, input); err != nil {
		return err
	}
	if err := resolveInputPaths(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseDatabaseBackend turns a raw backend string into a DatabaseBackend.
// An empty string means history tracking is off.
func ParseDatabaseBackend(raw string) (schema.DatabaseBackend, error) {
	if strings.TrimSpace(raw) == "" {
		return schema.NoneBackend, nil
	}
	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", raw)
	}
	return backend, nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Width = input.Width
	cfg.Verbose = input.Verbose

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be csv, text, json, parquet", input.Output)
	}

	cfg.MissingText = schema.MissingTextPolicy(strings.ToLower(input.MissingText))
	if cfg.MissingText == "" {
		cfg.MissingText = schema.EmptyTextPolicy
	}
	if _, ok := schema.ValidMissingTextPolicies[cfg.MissingText]; !ok {
		return fmt.Errorf("invalid missing-text policy '%s'. must be empty or legacy", input.MissingText)
	}

	cfg.HandleColumn = defaultString(input.HandleColumn, schema.DefaultHandleColumn)
	cfg.FundingColumn = defaultString(input.FundingColumn, schema.DefaultFundingColumn)
	cfg.IntervalColumn = defaultString(input.IntervalColumn, schema.DefaultIntervalColumn)
	if cfg.HandleColumn == cfg.FundingColumn {
		return fmt.Errorf("handle-column and funding-column must differ (both %q)", cfg.HandleColumn)
	}

	return nil
}

// validateHistoryBackend validates the run history backend configuration.
func validateHistoryBackend(cfg *Config, input *ConfigRawInput) error {
	backend, err := ParseDatabaseBackend(input.HistoryBackend)
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// resolveOutputFile picks the output destination for the chosen format.
// CSV and Parquet default to a file next to the roster data; text and JSON default to stdout.
func resolveOutputFile(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = strings.TrimSpace(input.OutputFile)
	switch {
	case cfg.OutputFile == StdoutPath:
		if cfg.Output == schema.ParquetOut {
			return fmt.Errorf("parquet output cannot be written to stdout")
		}
		cfg.OutputFile = ""
	case cfg.OutputFile != "":
	case cfg.Output == schema.CSVOut:
		cfg.OutputFile = DefaultOutputFile
	case cfg.Output == schema.ParquetOut:
		cfg.OutputFile = DefaultParquetFile
	}
	return nil
}

// resolveInputPaths checks that the roster file and tweets directory exist.
// A missing tweets directory is allowed: every company then simply has no archive.
func resolveInputPaths(cfg *Config, input *ConfigRawInput) error {
	rosterPath := defaultString(input.Roster, DefaultRosterPath)
	absRoster, err := filepath.Abs(rosterPath)
	if err != nil {
		return err
	}
	info, err := os.Stat(absRoster)
	if err != nil {
		return fmt.Errorf("roster %s is not readable: %w", rosterPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("roster %s is a directory, expected a CSV file", rosterPath)
	}
	cfg.RosterPath = absRoster

	tweetsDir := defaultString(input.TweetsDir, DefaultTweetsDir)
	absTweets, err := filepath.Abs(tweetsDir)
	if err != nil {
		return err
	}
	if info, err := os.Stat(absTweets); err == nil && !info.IsDir() {
		return fmt.Errorf("tweets-dir %s is a file, expected a directory", tweetsDir)
	} else if err != nil {
		LogWarn("Tweets directory not found, every company will have no archive", err)
	}
	cfg.TweetsDir = absTweets

	return nil
}

// defaultString returns fallback when s is blank.
func defaultString(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
