package sse

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/skillsenselab/meetscribe/meeting"
)

func TestClient_Send(t *testing.T) {
	client := NewClient("c1", "m1")

	if client.ID() != "c1" || client.MeetingID() != "m1" {
		t.Errorf("unexpected identity: %s / %s", client.ID(), client.MeetingID())
	}

	if !client.Send([]byte("event")) {
		t.Error("expected send to succeed")
	}
	select {
	case msg := <-client.Events():
		if string(msg) != "event" {
			t.Errorf("got %q", msg)
		}
	default:
		t.Error("expected message in channel")
	}
}

func TestClient_SendBufferFull(t *testing.T) {
	client := NewClient("c1", "m1")

	for i := 0; i < 256; i++ {
		client.Send([]byte("msg"))
	}
	if client.Send([]byte("overflow")) {
		t.Error("expected send to fail when buffer is full")
	}
}

func TestHub_BroadcastScopedToMeeting(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	subscribed := NewClient("c1", "meeting-a")
	other := NewClient("c2", "meeting-b")
	hub.Register(subscribed)
	hub.Register(other)

	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	hub.BroadcastToMeeting("meeting-a", []byte(`{"status":"diarizing"}`))

	select {
	case msg := <-subscribed.Events():
		if !strings.Contains(string(msg), "diarizing") {
			t.Errorf("got %q", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("subscribed client never received the event")
	}

	select {
	case msg := <-other.Events():
		t.Errorf("client of another meeting received %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := NewClient("c1", "m1")
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Unregister(client)
	waitFor(t, func() bool { return hub.ClientCount() == 0 })

	if _, open := <-client.Events(); open {
		t.Error("expected events channel closed after unregister")
	}
}

func TestHub_StopClosesAllClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient("c1", "m1")
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Stop()
	// Stop is idempotent.
	hub.Stop()

	select {
	case _, open := <-client.Events():
		if open {
			t.Error("expected channel closed on hub stop")
		}
	case <-time.After(time.Second):
		t.Fatal("client channel not closed after hub stop")
	}
}

func TestNotifierDeliversProgress(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := NewClient("c1", "m1")
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	n := NewNotifier(hub, "m1")
	n.Notify(meeting.Event{Status: meeting.StatusDiarizationComplete, Turns: 7})

	select {
	case msg := <-client.Events():
		var event meeting.Event
		if err := json.Unmarshal(msg, &event); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if event.Status != meeting.StatusDiarizationComplete || event.Turns != 7 {
			t.Errorf("unexpected event: %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never met")
}
