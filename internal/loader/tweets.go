package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/tweetstats/schema"
)

// TweetsPath returns the archive location of a handle inside dir.
func TweetsPath(dir, handle string) string {
	return filepath.Join(dir, handle+".csv")
}

// LoadTweets reads the semicolon-delimited archive of a handle.
// The boolean is false, with no error, when the company has no archive file.
func LoadTweets(dir, handle string) ([]schema.Tweet, bool, error) {
	path := TweetsPath(dir, handle)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to open tweets for %s: %w", handle, err)
	}
	defer func() { _ = f.Close() }()

	tweets, err := readTweets(f, path)
	if err != nil {
		return nil, false, err
	}
	return tweets, true, nil
}

// tweetDecoder turns one archive row into a Tweet, remembering where each column lives.
type tweetDecoder struct {
	path   string
	reader *csv.Reader
	index  map[string]int
	row    []string
}

func readTweets(r io.Reader, path string) ([]schema.Tweet, error) {
	reader := csv.NewReader(r)
	reader.Comma = schema.TweetDelimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []schema.Tweet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	index := headerIndex(header)
	for _, col := range schema.TweetColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s in %s", ErrMissingColumn, col, path)
		}
	}

	dec := &tweetDecoder{path: path, reader: reader, index: index}
	tweets := []schema.Tweet{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		dec.row = row
		tweet, err := dec.decode()
		if err != nil {
			return nil, err
		}
		tweets = append(tweets, tweet)
	}
	return tweets, nil
}

func (d *tweetDecoder) decode() (schema.Tweet, error) {
	var (
		t   schema.Tweet
		err error
	)

	raw := d.value(schema.TimestampColumn)
	if t.Timestamp, err = time.Parse(schema.TweetTimestampLayout, strings.TrimSpace(raw)); err != nil {
		return t, d.fail(schema.TimestampColumn, fmt.Errorf("invalid timestamp %q", raw))
	}

	t.Text = d.value(schema.TextColumn)
	t.TextMissing = t.Text == ""

	if t.Likes, err = d.integer(schema.LikesColumn); err != nil {
		return t, err
	}
	if t.Retweets, err = d.integer(schema.RetweetsColumn); err != nil {
		return t, err
	}
	if t.Replies, err = d.integer(schema.RepliesColumn); err != nil {
		return t, err
	}

	if t.IsReplied, err = d.boolean(schema.IsRepliedColumn); err != nil {
		return t, err
	}
	if t.IsReplyTo, err = d.boolean(schema.IsReplyToColumn); err != nil {
		return t, err
	}
	if t.HasMedia, err = d.boolean(schema.HasMediaColumn); err != nil {
		return t, err
	}

	if t.ReplyToUsers, err = d.list(schema.ReplyToUsersColumn); err != nil {
		return t, err
	}
	if t.Links, err = d.list(schema.LinksColumn); err != nil {
		return t, err
	}
	if t.Hashtags, err = d.list(schema.HashtagsColumn); err != nil {
		return t, err
	}
	if t.ImgURLs, err = d.list(schema.ImgURLsColumn); err != nil {
		return t, err
	}

	if video := strings.TrimSpace(d.value(schema.VideoURLColumn)); !isMissingCell(video) {
		t.VideoURL = &video
	}

	return t, nil
}

// missingTokens are the cell values pandas reads as NA by default.
var missingTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// isMissingCell reports whether a trimmed cell holds no value.
func isMissingCell(s string) bool {
	if s == "" {
		return true
	}
	_, ok := missingTokens[s]
	return ok
}

func (d *tweetDecoder) value(col string) string {
	return cell(d.row, d.index[col])
}

func (d *tweetDecoder) fail(col string, err error) error {
	line, column := fieldPos(d.reader, d.row, d.index[col])
	return &ParseError{File: d.path, Line: line, Column: column, Field: col, Err: err}
}

// integer parses a count cell. Blank means zero and whole floats such as "3.0" are accepted.
func (d *tweetDecoder) integer(col string) (int, error) {
	raw := strings.TrimSpace(d.value(col))
	if raw == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, d.fail(col, fmt.Errorf("invalid count %q", raw))
	}
	if f >= float64(math.MaxInt) || f < float64(math.MinInt) {
		return 0, d.fail(col, fmt.Errorf("count %q out of range", raw))
	}
	return int(f), nil
}

// boolean parses a flag cell. Blank means false.
func (d *tweetDecoder) boolean(col string) (bool, error) {
	raw := strings.TrimSpace(d.value(col))
	if raw == "" {
		return false, nil
	}
	switch strings.ToLower(raw) {
	case "true", "1", "1.0", "yes":
		return true, nil
	case "false", "0", "0.0", "no":
		return false, nil
	}
	return false, d.fail(col, fmt.Errorf("invalid flag %q", raw))
}

func (d *tweetDecoder) list(col string) ([]string, error) {
	items, err := ParseListLiteral(d.value(col))
	if err != nil {
		return nil, d.fail(col, err)
	}
	return items, nil
}
