// Package errors provides unified error handling for meetscribe.
// It implements structured error types with machine-readable codes and
// HTTP status mapping for the API surface.
//
// The pipeline-fatal codes (configuration, normalization, diarization,
// no-speech, transcription) all collapse to the single externally visible
// {"error": message} result shape; the code itself is diagnostics only.
package errors
