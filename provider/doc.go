// Package provider implements the pluggable-backend pattern used by the
// diarization and transcription packages. A backend registers a Factory
// under a name; a Registry creates and caches instances; a Selector picks
// one at runtime.
//
// Backend choice for a meeting job is static per-deployment configuration:
// selectors exist for startup wiring (pick the configured backend, verify it
// is reachable), never for intra-job fallback.
package provider
