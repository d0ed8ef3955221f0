package meeting

import "math"

// Segment is a speaker turn enriched with transcribed text, the unit of
// final output. Timestamps are rounded to two decimal places.
type Segment struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
}

// Result is the sole externally visible artifact of a successful run.
type Result struct {
	// Segments are ordered chronologically by turn start time.
	Segments []Segment `json:"segments"`
	// Duration is the total meeting length in seconds.
	Duration float64 `json:"duration"`
	// SpeakersCount is the number of distinct speaker labels among the
	// retained segments. Speakers whose every turn was dropped are not
	// counted.
	SpeakersCount int `json:"speakers_count"`
}

// ErrorResult is the failure shape, mutually exclusive with Result. A run
// emits exactly one of the two.
type ErrorResult struct {
	Error string `json:"error"`
}

// round2 rounds a time offset to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// countSpeakers returns the number of distinct speaker labels in segments.
func countSpeakers(segments []Segment) int {
	seen := make(map[string]struct{}, 4)
	for _, s := range segments {
		seen[s.Speaker] = struct{}{}
	}
	return len(seen)
}
