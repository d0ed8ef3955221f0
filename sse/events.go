package sse

// SSE event type constants.
const (
	// EventTypeConnected is sent when a client successfully connects.
	EventTypeConnected = "connected"

	// EventTypeProgress carries a pipeline progress record.
	EventTypeProgress = "progress"
)
