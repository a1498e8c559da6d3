package schema

// EnrichedScoreRecord adds presentation data to a ScoreRecord.
type EnrichedScoreRecord struct {
	Index     int   `json:"index"`
	FreqTrend Trend `json:"freq_trend"`
	ScoreRecord
}

// relativeFlatBand is the relative change under which two rates count as flat.
const relativeFlatBand = 0.05

// GetTrend compares a pre and post value. Either side being undefined gives UnknownTrend.
func GetTrend(pre, post *float64) Trend {
	if pre == nil || post == nil {
		return UnknownTrend
	}
	base := max(*pre, *post)
	if base == 0 {
		return FlatTrend
	}
	delta := (*post - *pre) / base
	switch {
	case delta > relativeFlatBand:
		return UpTrend
	case delta < -relativeFlatBand:
		return DownTrend
	default:
		return FlatTrend
	}
}

// EnrichScores adds a position and a frequency trend to a list of score records.
func EnrichScores(records []ScoreRecord) []EnrichedScoreRecord {
	output := make([]EnrichedScoreRecord, len(records))
	for i, r := range records {
		output[i] = EnrichedScoreRecord{
			Index:       i,
			FreqTrend:   GetTrend(r.PreFreq, r.PostFreq),
			ScoreRecord: r,
		}
	}
	return output
}
