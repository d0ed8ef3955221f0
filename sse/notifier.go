package sse

import (
	"encoding/json"

	"github.com/skillsenselab/meetscribe/meeting"
)

// Notifier adapts a Broadcaster to the pipeline's progress interface: every
// progress event is marshaled and delivered to the meeting's subscribers.
type Notifier struct {
	broadcaster Broadcaster
	meetingID   string
}

// NewNotifier creates a progress notifier for one meeting.
func NewNotifier(b Broadcaster, meetingID string) *Notifier {
	return &Notifier{broadcaster: b, meetingID: meetingID}
}

// Notify broadcasts the event to the meeting's SSE subscribers.
func (n *Notifier) Notify(event meeting.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	n.broadcaster.BroadcastToMeeting(n.meetingID, data)
}

var _ meeting.Notifier = (*Notifier)(nil)
