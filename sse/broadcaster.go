package sse

// Broadcaster delivers events to a meeting's subscribers. Handlers and
// notifiers depend on this abstraction rather than the concrete Hub.
type Broadcaster interface {
	BroadcastToMeeting(meetingID string, data []byte)
}
