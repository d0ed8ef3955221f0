// Package server provides the HTTP surface of the transcription service:
// a Gin-backed server with h2c support, the meeting API (upload, status,
// listing, SSE progress streams), and a standard middleware stack.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: X-Request-Id generation and propagation
//   - CORS: cross-origin resource sharing
//   - BodySizeLimit: request body size limits sized for audio uploads
//   - RequestLogger: request logging with duration tracking
//
// # Endpoints
//
// Operational endpoints (server/endpoint):
//
//   - /healthz: service health including backend availability
//   - /version: build version information
package server
