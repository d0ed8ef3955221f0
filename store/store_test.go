package store

import (
	"testing"

	"github.com/skillsenselab/meetscribe/errors"
	"github.com/skillsenselab/meetscribe/meeting"
)

func TestCreateAutoTitle(t *testing.T) {
	s := New()

	m := s.Create("")
	if m.ID == "" {
		t.Fatal("expected generated id")
	}
	if m.Status != StatusProcessing {
		t.Errorf("Status = %s, want processing", m.Status)
	}
	if m.Title == "" || m.Title[:11] != "Meeting of " {
		t.Errorf("Title = %q, want auto-generated", m.Title)
	}

	named := s.Create("Quarterly sync")
	if named.Title != "Quarterly sync" {
		t.Errorf("explicit title overwritten: %q", named.Title)
	}
	if named.ID == m.ID {
		t.Error("ids must be unique")
	}
}

func TestGetUnknown(t *testing.T) {
	s := New()
	if _, err := s.Get("missing"); errors.CodeOf(err) != errors.ErrCodeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestCompleteAndFail(t *testing.T) {
	s := New()
	m := s.Create("")

	result := &meeting.Result{
		Segments:      []meeting.Segment{{Speaker: "SPEAKER_00", Start: 0, End: 2.5, Text: "hi"}},
		Duration:      2.5,
		SpeakersCount: 1,
	}
	if err := s.Complete(m.ID, result); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	got, err := s.Get(m.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != StatusCompleted || got.Result == nil || got.Result.SpeakersCount != 1 {
		t.Errorf("unexpected record after completion: %+v", got)
	}

	other := s.Create("")
	if err := s.Fail(other.ID, "Diarization failed"); err != nil {
		t.Fatalf("Fail: %v", err)
	}
	failed, _ := s.Get(other.ID)
	if failed.Status != StatusFailed || failed.Error != "Diarization failed" {
		t.Errorf("unexpected record after failure: %+v", failed)
	}
	if failed.Result != nil {
		t.Error("failed meeting must not carry a result")
	}

	if err := s.Complete("missing", result); errors.CodeOf(err) != errors.ErrCodeNotFound {
		t.Errorf("Complete on unknown id should be not-found, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := New()
	a := s.Create("first")
	b := s.Create("second")

	list := s.List()
	if len(list) != 2 {
		t.Fatalf("List = %d entries, want 2", len(list))
	}
	// CreatedAt may collide at clock resolution; accept either order then,
	// but both records must be present.
	ids := map[string]bool{list[0].ID: true, list[1].ID: true}
	if !ids[a.ID] || !ids[b.ID] {
		t.Errorf("List missing records: %v", list)
	}
}

func TestCopiesDoNotAlias(t *testing.T) {
	s := New()
	m := s.Create("")
	m.Title = "mutated"

	got, _ := s.Get(m.ID)
	if got.Title == "mutated" {
		t.Error("caller mutation leaked into the store")
	}
}
