package meeting

import "github.com/skillsenselab/meetscribe/logger"

// Pipeline stage statuses emitted on the progress channel.
const (
	StatusConverting          = "converting"
	StatusDiarizing           = "diarizing"
	StatusDiarizationComplete = "diarization_complete"
	StatusTranscribing        = "transcribing"
	StatusCompleted           = "completed"
	StatusFailed              = "failed"
)

// Event is a structured progress record. It reports stage transitions and
// periodic per-turn progress; the final result never travels this channel.
type Event struct {
	Status string `json:"status"`
	// Turns is the diarized turn count, set with StatusDiarizationComplete.
	Turns int `json:"turns,omitempty"`
	// Completed and Total report per-turn progress with StatusTranscribing.
	Completed int `json:"completed,omitempty"`
	Total     int `json:"total,omitempty"`
	// Error carries the failure message with StatusFailed.
	Error string `json:"error,omitempty"`
}

// Notifier receives progress events. Implementations must be safe for
// concurrent use; the transcription workers report progress in parallel.
type Notifier interface {
	Notify(event Event)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Event)

// Notify calls f(event).
func (f NotifierFunc) Notify(event Event) { f(event) }

// NopNotifier discards all events.
type NopNotifier struct{}

// Notify does nothing.
func (NopNotifier) Notify(Event) {}

// MultiNotifier fans events out to several notifiers.
type MultiNotifier []Notifier

// Notify delivers the event to every notifier in order.
func (m MultiNotifier) Notify(event Event) {
	for _, n := range m {
		n.Notify(event)
	}
}

// LogNotifier emits progress events as structured log records.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a LogNotifier on the given logger.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify logs the event with its stage fields.
func (n *LogNotifier) Notify(event Event) {
	fields := map[string]interface{}{
		logger.FieldStatus: event.Status,
	}
	if event.Turns > 0 || event.Status == StatusDiarizationComplete {
		fields[logger.FieldTurns] = event.Turns
	}
	if event.Total > 0 {
		fields["completed"] = event.Completed
		fields["total"] = event.Total
	}
	if event.Error != "" {
		fields[logger.FieldError] = event.Error
		n.log.Error("pipeline progress", fields)
		return
	}
	n.log.Info("pipeline progress", fields)
}
