package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/meetscribe/logger"
	"github.com/skillsenselab/meetscribe/meeting"
	"github.com/skillsenselab/meetscribe/server"
	"github.com/skillsenselab/meetscribe/sse"
	"github.com/skillsenselab/meetscribe/store"
)

type apiFixture struct {
	engine *gin.Engine
	store  *store.Store
	hub    *sse.Hub

	mu        sync.Mutex
	processed []string
}

func newAPIFixture(t *testing.T, result *meeting.Result, processErr error) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &apiFixture{
		engine: gin.New(),
		store:  store.New(),
		hub:    sse.NewHub(),
	}
	go f.hub.Run()
	t.Cleanup(f.hub.Stop)

	process := func(_ context.Context, inputPath string, _ meeting.Notifier) (*meeting.Result, error) {
		f.mu.Lock()
		f.processed = append(f.processed, inputPath)
		f.mu.Unlock()
		if processErr != nil {
			return nil, processErr
		}
		return result, nil
	}

	api := server.NewAPI(f.store, f.hub, process, logger.NewDefault("test"))
	api.Register(f.engine)
	return f
}

func uploadRequest(t *testing.T, title string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("audio", "standup.webm")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("not-really-audio")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if title != "" {
		if err := w.WriteField("title", title); err != nil {
			t.Fatalf("write title: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/v1/meetings", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func waitForStatus(t *testing.T, st *store.Store, id string, want store.Status) *store.Meeting {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		m, err := st.Get(id)
		if err != nil {
			t.Fatalf("get meeting: %v", err)
		}
		if m.Status == want {
			return m
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("meeting %s never reached status %s", id, want)
	return nil
}

func decodeMeeting(t *testing.T, body *bytes.Buffer) store.Meeting {
	t.Helper()
	var envelope struct {
		Data store.Meeting `json:"data"`
	}
	if err := json.Unmarshal(body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestCreateMeeting_Accepted(t *testing.T) {
	result := &meeting.Result{
		Segments: []meeting.Segment{
			{Speaker: "SPEAKER_00", Start: 0, End: 4.5, Text: "hello everyone"},
		},
		Duration:      4.5,
		SpeakersCount: 1,
	}
	f := newAPIFixture(t, result, nil)

	rr := httptest.NewRecorder()
	f.engine.ServeHTTP(rr, uploadRequest(t, "Weekly sync"))

	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rr.Code, rr.Body.String())
	}
	m := decodeMeeting(t, rr.Body)
	if m.ID == "" {
		t.Fatal("expected meeting id in response")
	}
	if m.Title != "Weekly sync" {
		t.Fatalf("expected title 'Weekly sync', got %q", m.Title)
	}
	if m.Status != store.StatusProcessing {
		t.Fatalf("expected status processing, got %s", m.Status)
	}

	done := waitForStatus(t, f.store, m.ID, store.StatusCompleted)
	if done.Result == nil || done.Result.SpeakersCount != 1 {
		t.Fatalf("expected completed result with one speaker, got %+v", done.Result)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.processed) != 1 {
		t.Fatalf("expected one pipeline run, got %d", len(f.processed))
	}
}

func TestCreateMeeting_MissingFile(t *testing.T) {
	f := newAPIFixture(t, nil, nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/v1/meetings", http.NoBody)
	f.engine.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCreateMeeting_PipelineFailureRecorded(t *testing.T) {
	f := newAPIFixture(t, nil, context.DeadlineExceeded)

	rr := httptest.NewRecorder()
	f.engine.ServeHTTP(rr, uploadRequest(t, ""))

	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rr.Code)
	}
	m := decodeMeeting(t, rr.Body)
	if m.Title == "" {
		t.Fatal("expected auto-generated title")
	}

	failed := waitForStatus(t, f.store, m.ID, store.StatusFailed)
	if failed.Error == "" {
		t.Fatal("expected failure message on meeting")
	}
}

func TestGetMeeting_NotFound(t *testing.T) {
	f := newAPIFixture(t, nil, nil)

	rr := httptest.NewRecorder()
	f.engine.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/meetings/nope", http.NoBody))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestListMeetings(t *testing.T) {
	f := newAPIFixture(t, &meeting.Result{}, nil)

	first := f.store.Create("first")
	second := f.store.Create("second")

	rr := httptest.NewRecorder()
	f.engine.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/meetings", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var envelope struct {
		Data []store.Meeting `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Meta.Total != 2 {
		t.Fatalf("expected total 2, got %d", envelope.Meta.Total)
	}
	ids := map[string]bool{}
	for _, m := range envelope.Data {
		ids[m.ID] = true
	}
	if !ids[first.ID] || !ids[second.ID] {
		t.Fatalf("expected both meetings in listing, got %v", ids)
	}
}

func TestStreamEvents_UnknownMeeting(t *testing.T) {
	f := newAPIFixture(t, nil, nil)

	rr := httptest.NewRecorder()
	f.engine.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/meetings/nope/events", http.NoBody))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
