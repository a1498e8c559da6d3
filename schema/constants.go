package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string

	// Side represents which half of a tweet history a subset covers.
	Side string

	// MissingTextPolicy decides how a tweet without text counts toward average length.
	MissingTextPolicy string

	// Trend represents the direction of change between the pre and post halves.
	Trend string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv" // default
	TextOut    OutputMode = "text"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// Both sides of the funding event.
const (
	PreSide  Side = "pre"
	PostSide Side = "post"
)

// Missing text policies.
const (
	// EmptyTextPolicy counts a missing text as zero characters.
	EmptyTextPolicy MissingTextPolicy = "empty" // default

	// LegacyTextPolicy counts a missing text as the four characters of "None".
	// Tables produced straight from pandas read it as "nan", one character shorter.
	LegacyTextPolicy MissingTextPolicy = "legacy"
)

// LegacyMissingText is the literal a missing text was rendered as in earlier runs.
const LegacyMissingText = "None"

// Trend values.
const (
	UpTrend      Trend = "up"
	DownTrend    Trend = "down"
	FlatTrend    Trend = "flat"
	UnknownTrend Trend = "n/a"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// Default column names of the company roster.
const (
	DefaultHandleColumn   = "twitter_username"
	DefaultFundingColumn  = "first_funding_at"
	DefaultIntervalColumn = "first2last_funding_days"
)

// Column names of a tweet archive.
const (
	TimestampColumn    = "timestamp"
	TextColumn         = "text"
	LikesColumn        = "likes"
	RetweetsColumn     = "retweets"
	RepliesColumn      = "replies"
	IsRepliedColumn    = "is_replied"
	IsReplyToColumn    = "is_reply_to"
	ReplyToUsersColumn = "reply_to_users"
	LinksColumn        = "links"
	HashtagsColumn     = "hashtags"
	ImgURLsColumn      = "img_urls"
	HasMediaColumn     = "has_media"
	VideoURLColumn     = "video_url"
)

// TweetColumns lists every column a tweet archive must carry.
var TweetColumns = []string{
	TimestampColumn, TextColumn, LikesColumn, RetweetsColumn, RepliesColumn,
	IsRepliedColumn, IsReplyToColumn, ReplyToUsersColumn, LinksColumn,
	HashtagsColumn, ImgURLsColumn, HasMediaColumn, VideoURLColumn,
}

// TweetTimestampLayout is the layout of the timestamp column in tweet archives.
const TweetTimestampLayout = "2006-01-02 15:04:05"

// SeriesADateLayout is the layout of the series_a_date output column.
const SeriesADateLayout = "2006-01-02"

// TweetDelimiter separates fields in a tweet archive.
const TweetDelimiter = ';'

// DaysPerWeek converts a per-day rate into tweets per week.
const DaysPerWeek = 7.0

// ScoreColumns is the header of the summary table, in output order.
var ScoreColumns = []string{
	"series_a_date",
	"preA_timespan",
	"postA_timespan",
	"all_tweet_num",
	"preA_tweet_num",
	"postA_tweet_num",
	"preA_tweet_freq",
	"postA_tweet_freq",
	"preA_tweet_avglength",
	"postA_tweet_avglength",
	"preA_tweet_content_richness",
	"postA_tweet_content_richness",
	"preA_tweet_interactiveness",
	"postA_tweet_interactiveness",
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidMissingTextPolicies lists all valid missing text policies.
var ValidMissingTextPolicies = map[MissingTextPolicy]struct{}{
	EmptyTextPolicy:  {},
	LegacyTextPolicy: {},
}
