package meeting_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/skillsenselab/meetscribe/diarization"
	apperrors "github.com/skillsenselab/meetscribe/errors"
	"github.com/skillsenselab/meetscribe/media"
	"github.com/skillsenselab/meetscribe/meeting"
	"github.com/skillsenselab/meetscribe/transcription"
)

// --- fakes ---

type fakeNormalizer struct {
	err error
}

func (f *fakeNormalizer) Normalize(_ context.Context, _ string, ws *media.Workspace) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return ws.Path("audio.wav"), nil
}

type fakeExtractor struct {
	err error
}

func (f *fakeExtractor) Extract(_ context.Context, _ string, _, _ float64, outPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return outPath, nil
}

type fakeDiarizer struct {
	turns []diarization.Turn
	err   error
}

func (f *fakeDiarizer) Name() string                       { return "fake" }
func (f *fakeDiarizer) IsAvailable(_ context.Context) bool { return true }
func (f *fakeDiarizer) Diarize(_ context.Context, _ diarization.Request) (*diarization.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &diarization.Result{Turns: f.turns}, nil
}

type fakeTranscriber struct {
	// texts maps the segment file name to the returned text; missing keys
	// return defaultText.
	texts       map[string]string
	defaultText string
	err         error
}

func (f *fakeTranscriber) Name() string                       { return "fake" }
func (f *fakeTranscriber) IsAvailable(_ context.Context) bool { return true }
func (f *fakeTranscriber) Transcribe(_ context.Context, req transcription.Request) (*transcription.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	text, ok := f.texts[filepath.Base(req.AudioPath)]
	if !ok {
		text = f.defaultText
	}
	return &transcription.Response{Text: text}, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []meeting.Event
}

func (r *recordingNotifier) Notify(event meeting.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingNotifier) snapshot() []meeting.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]meeting.Event(nil), r.events...)
}

// --- helpers ---

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meeting.webm")
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func newPipeline(t *testing.T, cfg meeting.Config, d *fakeDiarizer, tr *fakeTranscriber, ex *fakeExtractor, n *fakeNormalizer, not meeting.Notifier) *meeting.Pipeline {
	t.Helper()
	if n == nil {
		n = &fakeNormalizer{}
	}
	if ex == nil {
		ex = &fakeExtractor{}
	}
	cfg.WorkspaceDir = t.TempDir()
	return meeting.NewPipeline(cfg, n, ex, d, tr, not)
}

// --- tests ---

func TestProcessHappyPath(t *testing.T) {
	d := &fakeDiarizer{turns: []diarization.Turn{
		{Speaker: "SPEAKER_00", Start: 0, End: 4.567},
		{Speaker: "SPEAKER_01", Start: 4.567, End: 9.111},
		{Speaker: "SPEAKER_00", Start: 9.111, End: 30.255},
	}}
	tr := &fakeTranscriber{defaultText: "hello"}

	p := newPipeline(t, meeting.Config{}, d, tr, nil, nil, nil)
	result, err := p.Process(context.Background(), writeInput(t))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(result.Segments) != 3 {
		t.Fatalf("segments = %d, want 3", len(result.Segments))
	}
	for i, seg := range result.Segments {
		if seg.End <= seg.Start {
			t.Errorf("segment %d has end <= start: %+v", i, seg)
		}
		if seg.Text == "" {
			t.Errorf("segment %d has empty text", i)
		}
	}
	// Chronological order with two-decimal rounding.
	if result.Segments[0].End != 4.57 || result.Segments[1].End != 9.11 {
		t.Errorf("unexpected rounding: %+v", result.Segments)
	}
	if result.Duration != 30.26 {
		t.Errorf("Duration = %v, want last turn end rounded", result.Duration)
	}
	if result.SpeakersCount != 2 {
		t.Errorf("SpeakersCount = %d, want 2", result.SpeakersCount)
	}
}

func TestProcessDropsEmptyTextAndUncountsSpeaker(t *testing.T) {
	d := &fakeDiarizer{turns: []diarization.Turn{
		{Speaker: "SPEAKER_00", Start: 0, End: 5},
		{Speaker: "SPEAKER_01", Start: 5, End: 10},
		{Speaker: "SPEAKER_00", Start: 10, End: 15},
	}}
	// Only SPEAKER_01's single turn produces text; SPEAKER_00's turns come
	// back empty and must disappear, along with the speaker itself.
	tr := &fakeTranscriber{texts: map[string]string{
		"segment_1.wav": "the only words spoken",
	}}

	p := newPipeline(t, meeting.Config{}, d, tr, nil, nil, nil)
	result, err := p.Process(context.Background(), writeInput(t))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(result.Segments) != 1 {
		t.Fatalf("segments = %v, want 1 retained", result.Segments)
	}
	if result.Segments[0].Speaker != "SPEAKER_01" {
		t.Errorf("retained speaker = %q", result.Segments[0].Speaker)
	}
	if result.SpeakersCount != 1 {
		t.Errorf("SpeakersCount = %d, want 1 (dropped speaker not counted)", result.SpeakersCount)
	}
	if result.Duration != 15 {
		t.Errorf("Duration = %v, want last diarized turn end even though dropped", result.Duration)
	}
}

func TestProcessNoSpeech(t *testing.T) {
	d := &fakeDiarizer{turns: nil}
	not := &recordingNotifier{}

	p := newPipeline(t, meeting.Config{}, d, &fakeTranscriber{}, nil, nil, not)
	_, err := p.Process(context.Background(), writeInput(t))
	if apperrors.CodeOf(err) != apperrors.ErrCodeNoSpeech {
		t.Fatalf("expected no-speech error, got %v", err)
	}

	// The diarization completion notice with turns == 0 must precede the
	// failure event.
	events := not.snapshot()
	sawComplete := false
	for _, e := range events {
		if e.Status == meeting.StatusDiarizationComplete {
			sawComplete = true
			if e.Turns != 0 {
				t.Errorf("completion notice turns = %d, want 0", e.Turns)
			}
		}
		if e.Status == meeting.StatusFailed && !sawComplete {
			t.Error("failure emitted before diarization completion notice")
		}
	}
	if !sawComplete {
		t.Error("no diarization completion notice emitted")
	}
}

func TestProcessAllTurnsFailStillSucceeds(t *testing.T) {
	d := &fakeDiarizer{turns: []diarization.Turn{
		{Speaker: "SPEAKER_00", Start: 0, End: 10},
		{Speaker: "SPEAKER_01", Start: 10, End: 20},
	}}
	ex := &fakeExtractor{err: errors.New("disk full")}

	p := newPipeline(t, meeting.Config{}, d, &fakeTranscriber{defaultText: "x"}, ex, nil, nil)
	result, err := p.Process(context.Background(), writeInput(t))
	if err != nil {
		t.Fatalf("turn-level failures must not become a job error, got %v", err)
	}
	if len(result.Segments) != 0 {
		t.Errorf("segments = %v, want empty", result.Segments)
	}
	if result.Duration != 20 {
		t.Errorf("Duration = %v, want last diarized turn end", result.Duration)
	}
	if result.SpeakersCount != 0 {
		t.Errorf("SpeakersCount = %d, want 0", result.SpeakersCount)
	}
}

func TestProcessWholeFileMode(t *testing.T) {
	// The whole-file diarizer hands back one synthetic turn spanning the
	// probed length.
	d := &fakeDiarizer{turns: []diarization.Turn{
		{Speaker: diarization.DefaultSpeaker, Start: 0, End: 30.004},
	}}
	tr := &fakeTranscriber{defaultText: "full meeting text"}

	p := newPipeline(t, meeting.Config{WholeFile: true}, d, tr, nil, nil, nil)
	result, err := p.Process(context.Background(), writeInput(t))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(result.Segments) != 1 {
		t.Fatalf("segments = %v, want exactly one", result.Segments)
	}
	seg := result.Segments[0]
	if seg.Speaker != "SPEAKER_00" || seg.Start != 0 || seg.End != 30.0 {
		t.Errorf("unexpected segment: %+v", seg)
	}
	if result.SpeakersCount != 1 {
		t.Errorf("SpeakersCount = %d, want 1", result.SpeakersCount)
	}
	if result.Duration != 30.0 {
		t.Errorf("Duration = %v, want probed length", result.Duration)
	}
}

func TestProcessWholeFileFailureIsFatal(t *testing.T) {
	d := &fakeDiarizer{turns: []diarization.Turn{
		{Speaker: diarization.DefaultSpeaker, Start: 0, End: 30},
	}}
	tr := &fakeTranscriber{err: errors.New("model crashed")}

	p := newPipeline(t, meeting.Config{WholeFile: true}, d, tr, nil, nil, nil)
	_, err := p.Process(context.Background(), writeInput(t))
	if apperrors.CodeOf(err) != apperrors.ErrCodeTranscription {
		t.Fatalf("expected transcription error, got %v", err)
	}
}

func TestProcessMissingInput(t *testing.T) {
	not := &recordingNotifier{}
	p := newPipeline(t, meeting.Config{}, &fakeDiarizer{}, &fakeTranscriber{}, nil, nil, not)

	if _, err := p.Process(context.Background(), filepath.Join(t.TempDir(), "nope.webm")); err == nil {
		t.Fatal("expected error for missing input")
	}
	for _, e := range not.snapshot() {
		if e.Status != meeting.StatusFailed {
			t.Errorf("no stage notice may precede pre-flight failure, saw %q", e.Status)
		}
	}
}

func TestProcessNormalizationFailure(t *testing.T) {
	n := &fakeNormalizer{err: errors.New("unsupported codec")}
	p := newPipeline(t, meeting.Config{}, &fakeDiarizer{}, &fakeTranscriber{}, nil, n, nil)

	_, err := p.Process(context.Background(), writeInput(t))
	if apperrors.CodeOf(err) != apperrors.ErrCodeNormalization {
		t.Fatalf("expected normalization error, got %v", err)
	}
}

func TestProcessDiarizationFailure(t *testing.T) {
	d := &fakeDiarizer{err: errors.New("sidecar down")}
	p := newPipeline(t, meeting.Config{}, d, &fakeTranscriber{}, nil, nil, nil)

	_, err := p.Process(context.Background(), writeInput(t))
	if apperrors.CodeOf(err) != apperrors.ErrCodeDiarization {
		t.Fatalf("expected diarization error, got %v", err)
	}
}

func TestProcessProgressEveryTenTurns(t *testing.T) {
	turns := make([]diarization.Turn, 25)
	for i := range turns {
		turns[i] = diarization.Turn{
			Speaker: fmt.Sprintf("SPEAKER_%02d", i%2),
			Start:   float64(i),
			End:     float64(i + 1),
		}
	}
	not := &recordingNotifier{}

	// Serial workers keep the completion order deterministic.
	p := newPipeline(t, meeting.Config{Workers: 1}, &fakeDiarizer{turns: turns}, &fakeTranscriber{defaultText: "x"}, nil, nil, not)
	if _, err := p.Process(context.Background(), writeInput(t)); err != nil {
		t.Fatalf("Process: %v", err)
	}

	var marks []int
	for _, e := range not.snapshot() {
		if e.Status == meeting.StatusTranscribing && e.Completed > 0 {
			marks = append(marks, e.Completed)
		}
	}
	if len(marks) != 2 || marks[0] != 10 || marks[1] != 20 {
		t.Errorf("progress marks = %v, want [10 20]", marks)
	}
}

func TestProcessParallelWorkersPreserveOrder(t *testing.T) {
	turns := make([]diarization.Turn, 12)
	texts := make(map[string]string, 12)
	for i := range turns {
		turns[i] = diarization.Turn{
			Speaker: fmt.Sprintf("SPEAKER_%02d", i%3),
			Start:   float64(i * 2),
			End:     float64(i*2 + 2),
		}
		texts[fmt.Sprintf("segment_%d.wav", i)] = fmt.Sprintf("utterance %d", i)
	}

	p := newPipeline(t, meeting.Config{Workers: 4}, &fakeDiarizer{turns: turns}, &fakeTranscriber{texts: texts}, nil, nil, nil)
	result, err := p.Process(context.Background(), writeInput(t))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(result.Segments) != 12 {
		t.Fatalf("segments = %d, want 12", len(result.Segments))
	}
	for i, seg := range result.Segments {
		if want := fmt.Sprintf("utterance %d", i); seg.Text != want {
			t.Errorf("segment %d text = %q, want %q (order must match turns)", i, seg.Text, want)
		}
		if i > 0 && seg.Start < result.Segments[i-1].Start {
			t.Errorf("segments out of chronological order at %d", i)
		}
	}
}
