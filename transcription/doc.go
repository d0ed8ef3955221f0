// Package transcription defines the provider interface and common types
// for interacting with speech-to-text backends.
//
// It follows the provider pattern with a pluggable registry for
// runtime-selectable backends. The backend is chosen once per job; there
// is no mid-job switching or retry across backends.
//
// # Backends
//
//   - transcription/whisper: local faster-whisper HTTP sidecar
//   - transcription/groq: Groq hosted Whisper API
package transcription
