package diarization

import (
	"reflect"
	"testing"
)

func TestSanitizeTurns(t *testing.T) {
	in := []Turn{
		{Speaker: "SPEAKER_01", Start: 10.0, End: 12.5},
		{Speaker: "SPEAKER_00", Start: 0.0, End: 4.0},
		{Speaker: "SPEAKER_00", Start: 5.0, End: 5.0},  // zero length
		{Speaker: "SPEAKER_01", Start: 8.0, End: 6.0},  // inverted
		{Speaker: "SPEAKER_00", Start: -1.0, End: 2.0}, // negative start
		{Speaker: "SPEAKER_00", Start: 4.0, End: 10.0},
	}

	got := SanitizeTurns(in)
	want := []Turn{
		{Speaker: "SPEAKER_00", Start: 0.0, End: 4.0},
		{Speaker: "SPEAKER_00", Start: 4.0, End: 10.0},
		{Speaker: "SPEAKER_01", Start: 10.0, End: 12.5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SanitizeTurns = %v, want %v", got, want)
	}

	// Original slice untouched.
	if in[0].Start != 10.0 {
		t.Error("input slice was modified")
	}
}

func TestSanitizeTurnsEmpty(t *testing.T) {
	if got := SanitizeTurns(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestTurnDuration(t *testing.T) {
	turn := Turn{Start: 1.5, End: 4.0}
	if got := turn.Duration(); got != 2.5 {
		t.Errorf("Duration = %v, want 2.5", got)
	}
}
