package core

import (
	"unicode/utf8"

	"github.com/huangsam/tweetstats/schema"
)

// Count returns the number of tweets in a subset.
// Unlike the other metrics it is zero, not absent, for a missing archive.
func Count(subset *schema.Subset) int {
	return subset.Len()
}

// Frequency returns tweets per week over the timespan.
// It is nil when the timespan is absent or not positive.
func Frequency(subset *schema.Subset, timespan *int) *float64 {
	if timespan == nil || *timespan <= 0 {
		return nil
	}
	v := float64(Count(subset)) * schema.DaysPerWeek / float64(*timespan)
	return &v
}

// AvgLength returns the mean character count of tweet text.
func AvgLength(subset *schema.Subset, policy schema.MissingTextPolicy) *float64 {
	return mean(subset, func(t schema.Tweet) float64 {
		if t.TextMissing && policy == schema.LegacyTextPolicy {
			return float64(utf8.RuneCountInString(schema.LegacyMissingText))
		}
		return float64(utf8.RuneCountInString(t.Text))
	})
}

// ContentRichness returns the mean of links, hashtags and images per tweet,
// plus one for attached media and one for a video.
func ContentRichness(subset *schema.Subset) *float64 {
	return mean(subset, func(t schema.Tweet) float64 {
		score := len(t.Links) + len(t.Hashtags) + len(t.ImgURLs)
		score += boolToInt(t.HasMedia)
		score += boolToInt(t.VideoURL != nil)
		return float64(score)
	})
}

// Interactivity returns the mean of likes, retweets, replies and reply targets per tweet,
// plus one each for having been replied to and for being a reply.
func Interactivity(subset *schema.Subset) *float64 {
	return mean(subset, func(t schema.Tweet) float64 {
		score := t.Likes + t.Retweets + t.Replies
		score += boolToInt(t.IsReplied) + boolToInt(t.IsReplyTo)
		score += len(t.ReplyToUsers)
		return float64(score)
	})
}

// mean averages a per-tweet score, returning nil for an absent or empty subset.
func mean(subset *schema.Subset, score func(schema.Tweet) float64) *float64 {
	n := subset.Len()
	if n == 0 {
		return nil
	}
	var sum float64
	for _, t := range subset.Tweets {
		sum += score(t)
	}
	avg := sum / float64(n)
	return &avg
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
