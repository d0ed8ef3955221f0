package diarization

import "sort"

// DefaultSpeaker is the label used when speaker identity is unknown,
// e.g. when diarization is disabled and the whole recording is one turn.
const DefaultSpeaker = "SPEAKER_00"

// Request holds parameters for a diarization call.
type Request struct {
	// AudioPath is the path to the canonical waveform to diarize.
	AudioPath string `json:"audio_path"`
	// NumSpeakers is the exact number of speakers (0 = auto-detect).
	NumSpeakers int `json:"num_speakers,omitempty"`
	// MinSpeakers is the minimum expected number of speakers.
	MinSpeakers int `json:"min_speakers,omitempty"`
	// MaxSpeakers is the maximum expected number of speakers.
	MaxSpeakers int `json:"max_speakers,omitempty"`
}

// Result holds the outcome of a diarization call.
type Result struct {
	// Turns contains speaker-attributed time ranges, ordered by start time.
	Turns []Turn `json:"turns"`
	// NumSpeakers is the number of speakers detected.
	NumSpeakers int `json:"num_speakers"`
}

// Turn is a contiguous time range attributed to a single speaker.
type Turn struct {
	// Speaker is the diarizer-assigned label, e.g. "SPEAKER_01".
	Speaker string `json:"speaker"`
	// Start is the turn start time in seconds.
	Start float64 `json:"start"`
	// End is the turn end time in seconds.
	End float64 `json:"end"`
}

// Duration returns the turn length in seconds.
func (t Turn) Duration() float64 { return t.End - t.Start }

// SanitizeTurns orders turns by start time and drops ranges a downstream
// extractor cannot cut: negative starts and turns whose end does not lie
// strictly after their start. The input slice is not modified.
func SanitizeTurns(turns []Turn) []Turn {
	out := make([]Turn, 0, len(turns))
	for _, t := range turns {
		if t.Start < 0 || t.End <= t.Start {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
