package pyannote_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/skillsenselab/meetscribe/diarization"
	"github.com/skillsenselab/meetscribe/diarization/pyannote"
)

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(path, []byte("RIFF....WAVE"), 0o644); err != nil {
		t.Fatalf("write temp audio: %v", err)
	}
	return path
}

func TestDiarize(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/diarize" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if _, _, err := r.FormFile("audio"); err != nil {
			t.Errorf("missing audio part: %v", err)
		}
		if got := r.FormValue("num_speakers"); got != "2" {
			t.Errorf("num_speakers = %q, want 2", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"turns": [
				{"speaker": "SPEAKER_01", "start": 5.0, "end": 9.5},
				{"speaker": "SPEAKER_00", "start": 0.0, "end": 5.0},
				{"speaker": "SPEAKER_00", "start": 9.5, "end": 9.5}
			],
			"num_speakers": 2
		}`))
	}))
	defer srv.Close()

	p := pyannote.NewProvider(pyannote.Config{BaseURL: srv.URL, AuthToken: "hf_test"})
	result, err := p.Diarize(context.Background(), diarization.Request{
		AudioPath:   writeTempAudio(t),
		NumSpeakers: 2,
	})
	if err != nil {
		t.Fatalf("Diarize: %v", err)
	}

	if gotAuth != "Bearer hf_test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if result.NumSpeakers != 2 {
		t.Errorf("NumSpeakers = %d", result.NumSpeakers)
	}
	// Zero-length turn dropped, remainder ordered by start.
	if len(result.Turns) != 2 {
		t.Fatalf("Turns = %v, want 2 entries", result.Turns)
	}
	if result.Turns[0].Speaker != "SPEAKER_00" || result.Turns[1].Speaker != "SPEAKER_01" {
		t.Errorf("turns out of order: %v", result.Turns)
	}
}

func TestDiarizeSidecarError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"error": "model not loaded"}`))
	}))
	defer srv.Close()

	p := pyannote.NewProvider(pyannote.Config{BaseURL: srv.URL})
	if _, err := p.Diarize(context.Background(), diarization.Request{AudioPath: writeTempAudio(t)}); err == nil {
		t.Fatal("expected error from sidecar error field")
	}
}

func TestDiarizeHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := pyannote.NewProvider(pyannote.Config{BaseURL: srv.URL})
	if _, err := p.Diarize(context.Background(), diarization.Request{AudioPath: writeTempAudio(t)}); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestDiarizeMissingFile(t *testing.T) {
	p := pyannote.NewProvider(pyannote.Config{})
	if _, err := p.Diarize(context.Background(), diarization.Request{AudioPath: "/nonexistent.wav"}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestIsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := pyannote.NewProvider(pyannote.Config{BaseURL: srv.URL})
	if !p.IsAvailable(context.Background()) {
		t.Error("expected available")
	}

	srv.Close()
	if p.IsAvailable(context.Background()) {
		t.Error("expected unavailable after server shutdown")
	}
}
