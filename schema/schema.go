// Package schema has configs, models and constants for all parts of tweetstats.
package schema

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownHandle is returned when a handle is not part of the roster.
var ErrUnknownHandle = errors.New("unknown handle")

// Company is one row of the roster: a Twitter handle and its first funding event.
type Company struct {
	Handle              string    // Twitter handle, also the archive file name
	FundingTime         time.Time // Timestamp of the first funding round (Series A)
	FundingIntervalDays string    // Days between first and last funding, passed through untouched
}

// Roster is the ordered, read-only list of companies for a run.
type Roster struct {
	Companies []Company
	index     map[string]int
}

// NewRoster builds a Roster that keeps the given order.
// When a handle repeats, lookups resolve to its first occurrence.
func NewRoster(companies []Company) *Roster {
	index := make(map[string]int, len(companies))
	for i, c := range companies {
		if _, ok := index[c.Handle]; !ok {
			index[c.Handle] = i
		}
	}
	return &Roster{Companies: companies, index: index}
}

// Lookup returns the company with the given handle.
func (r *Roster) Lookup(handle string) (Company, bool) {
	i, ok := r.index[handle]
	if !ok {
		return Company{}, false
	}
	return r.Companies[i], true
}

// LookupFundingTime returns the funding timestamp of the given handle.
func (r *Roster) LookupFundingTime(handle string) (time.Time, error) {
	c, ok := r.Lookup(handle)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s", ErrUnknownHandle, handle)
	}
	return c.FundingTime, nil
}

// Len returns the number of companies in the roster.
func (r *Roster) Len() int {
	return len(r.Companies)
}

// Tweet is one archived tweet with its list-valued columns already decoded.
type Tweet struct {
	Timestamp    time.Time
	Text         string
	TextMissing  bool // true when the text cell was empty
	Likes        int
	Retweets     int
	Replies      int
	IsReplied    bool
	IsReplyTo    bool
	ReplyToUsers []string
	Links        []string
	Hashtags     []string
	ImgURLs      []string
	HasMedia     bool
	VideoURL     *string // nil when the tweet has no video
}

// Subset is the pre or post half of a company's tweets.
// A nil *Subset means the company has no archive at all.
type Subset struct {
	Side   Side
	Tweets []Tweet
}

// Len returns the number of tweets in the subset, treating nil as empty.
func (s *Subset) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Tweets)
}

// ScoreRecord is one row of the summary table.
// Pointer fields are nil when the metric is undefined for the company.
type ScoreRecord struct {
	Handle              string `json:"handle"`
	FundingIntervalDays string `json:"funding_interval_days"`

	SeriesADate  string `json:"series_a_date"`
	PreTimespan  *int   `json:"preA_timespan"`
	PostTimespan *int   `json:"postA_timespan"`
	AllTweetNum  int    `json:"all_tweet_num"`
	PreTweetNum  int    `json:"preA_tweet_num"`
	PostTweetNum int    `json:"postA_tweet_num"`

	PreFreq             *float64 `json:"preA_tweet_freq"`
	PostFreq            *float64 `json:"postA_tweet_freq"`
	PreAvgLength        *float64 `json:"preA_tweet_avglength"`
	PostAvgLength       *float64 `json:"postA_tweet_avglength"`
	PreContentRichness  *float64 `json:"preA_tweet_content_richness"`
	PostContentRichness *float64 `json:"postA_tweet_content_richness"`
	PreInteractiveness  *float64 `json:"preA_tweet_interactiveness"`
	PostInteractiveness *float64 `json:"postA_tweet_interactiveness"`
}

// RunOutput is the result of scoring a whole roster.
type RunOutput struct {
	Records  []ScoreRecord
	Archives int // Number of companies that had a tweet archive
}
