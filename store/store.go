// Package store keeps meeting transcription jobs and their results in
// memory. Records live for the lifetime of the process; durable storage is
// out of scope.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skillsenselab/meetscribe/errors"
	"github.com/skillsenselab/meetscribe/meeting"
)

// Status is the lifecycle state of a meeting job.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Meeting is one transcription job and, once finished, its transcript.
type Meeting struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Status    Status          `json:"status"`
	Result    *meeting.Result `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store is a concurrency-safe in-memory meeting store.
type Store struct {
	mu       sync.RWMutex
	meetings map[string]*Meeting
	now      func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		meetings: make(map[string]*Meeting),
		now:      time.Now,
	}
}

// Create registers a new meeting in the processing state and returns it.
// An empty title gets an auto-generated one from the creation time.
func (s *Store) Create(title string) *Meeting {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if title == "" {
		title = "Meeting of " + now.Format("2006-01-02 15:04")
	}
	m := &Meeting{
		ID:        uuid.NewString(),
		Title:     title,
		Status:    StatusProcessing,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.meetings[m.ID] = m
	return s.copyLocked(m)
}

// Get returns the meeting with the given id.
func (s *Store) Get(id string) (*Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.meetings[id]
	if !ok {
		return nil, errors.NotFound("meeting", id)
	}
	return s.copyLocked(m), nil
}

// List returns all meetings, newest first.
func (s *Store) List() []*Meeting {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Meeting, 0, len(s.meetings))
	for _, m := range s.meetings {
		out = append(out, s.copyLocked(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Complete marks a meeting finished and attaches its result.
func (s *Store) Complete(id string, result *meeting.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.meetings[id]
	if !ok {
		return errors.NotFound("meeting", id)
	}
	m.Status = StatusCompleted
	m.Result = result
	m.Error = ""
	m.UpdatedAt = s.now()
	return nil
}

// Fail marks a meeting failed with the given message.
func (s *Store) Fail(id string, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.meetings[id]
	if !ok {
		return errors.NotFound("meeting", id)
	}
	m.Status = StatusFailed
	m.Error = message
	m.Result = nil
	m.UpdatedAt = s.now()
	return nil
}

// copyLocked returns a shallow copy so callers never share the stored
// struct. Result is treated as immutable once attached.
func (s *Store) copyLocked(m *Meeting) *Meeting {
	c := *m
	return &c
}
