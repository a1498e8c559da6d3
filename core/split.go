package core

import (
	"time"

	"github.com/huangsam/tweetstats/schema"
)

// SplitByEvent partitions tweets at the funding event.
// Tweets strictly before the event go to pre; the boundary tweet and later ones go to post.
// Both subsets are nil when the company has no archive.
func SplitByEvent(tweets []schema.Tweet, present bool, event time.Time) (pre, post *schema.Subset) {
	if !present {
		return nil, nil
	}
	pre = &schema.Subset{Side: schema.PreSide, Tweets: []schema.Tweet{}}
	post = &schema.Subset{Side: schema.PostSide, Tweets: []schema.Tweet{}}
	for _, t := range tweets {
		if t.Timestamp.Before(event) {
			pre.Tweets = append(pre.Tweets, t)
		} else {
			post.Tweets = append(post.Tweets, t)
		}
	}
	return pre, post
}

// Timespan returns the whole days a subset covers relative to the event.
// For pre it is the event date minus the earliest tweet date; for post it is the
// latest tweet date minus the event date. Time of day is ignored.
// It is nil when the subset is absent or empty.
func Timespan(subset *schema.Subset, event time.Time) *int {
	if subset.Len() == 0 {
		return nil
	}

	eventDay := dateOf(event)
	var days int
	switch subset.Side {
	case schema.PreSide:
		earliest := subset.Tweets[0].Timestamp
		for _, t := range subset.Tweets[1:] {
			if t.Timestamp.Before(earliest) {
				earliest = t.Timestamp
			}
		}
		days = daysBetween(dateOf(earliest), eventDay)
	default:
		latest := subset.Tweets[0].Timestamp
		for _, t := range subset.Tweets[1:] {
			if t.Timestamp.After(latest) {
				latest = t.Timestamp
			}
		}
		days = daysBetween(eventDay, dateOf(latest))
	}
	return &days
}

// dateOf drops the time of day, keeping the calendar date of t.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the number of calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
