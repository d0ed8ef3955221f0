// Package diarization defines the provider interface and common types
// for interacting with speaker diarization backends.
//
// It follows the provider pattern with runtime-selectable backends.
//
// # Backends
//
//   - diarization/pyannote: speaker diarization via the pyannote HTTP sidecar
//   - diarization/wholefile: synthesizes a single all-audio turn so runs
//     with diarization disabled flow through the same pipeline
package diarization
