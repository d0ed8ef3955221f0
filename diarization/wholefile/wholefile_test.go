package wholefile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/skillsenselab/meetscribe/diarization"
	"github.com/skillsenselab/meetscribe/diarization/wholefile"
)

type stubProber struct {
	duration float64
	err      error
}

func (s *stubProber) Probe(_ context.Context, _ string) (float64, error) {
	return s.duration, s.err
}

func TestDiarizeSingleTurn(t *testing.T) {
	p := wholefile.NewProvider(&stubProber{duration: 123.456})

	result, err := p.Diarize(context.Background(), diarization.Request{AudioPath: "audio.wav"})
	if err != nil {
		t.Fatalf("Diarize: %v", err)
	}
	if len(result.Turns) != 1 {
		t.Fatalf("Turns = %v, want exactly one", result.Turns)
	}
	turn := result.Turns[0]
	if turn.Speaker != diarization.DefaultSpeaker {
		t.Errorf("Speaker = %q, want %q", turn.Speaker, diarization.DefaultSpeaker)
	}
	if turn.Start != 0 || turn.End != 123.456 {
		t.Errorf("turn range = [%v, %v), want [0, 123.456)", turn.Start, turn.End)
	}
	if result.NumSpeakers != 1 {
		t.Errorf("NumSpeakers = %d, want 1", result.NumSpeakers)
	}
}

func TestDiarizeEmptyRecording(t *testing.T) {
	p := wholefile.NewProvider(&stubProber{duration: 0})

	result, err := p.Diarize(context.Background(), diarization.Request{AudioPath: "audio.wav"})
	if err != nil {
		t.Fatalf("Diarize: %v", err)
	}
	if len(result.Turns) != 0 {
		t.Errorf("expected no turns for empty recording, got %v", result.Turns)
	}
}

func TestDiarizeProbeError(t *testing.T) {
	p := wholefile.NewProvider(&stubProber{err: errors.New("ffprobe failed")})

	if _, err := p.Diarize(context.Background(), diarization.Request{AudioPath: "audio.wav"}); err == nil {
		t.Fatal("expected probe error to propagate")
	}
}

func TestIsAvailable(t *testing.T) {
	p := wholefile.NewProvider(&stubProber{})
	if !p.IsAvailable(context.Background()) {
		t.Error("whole-file provider must always be available")
	}
}
