// Package logger provides structured logging for meetscribe built on zerolog.
//
// The default output is stderr: stdout is reserved for the final meeting
// result record, and all diagnostics and progress records go to the
// secondary channel.
//
// # Usage
//
//	logger.Init(logger.Config{Level: "info", Format: "json"})
//	log := logger.Get("pipeline")
//	log.Info("diarization complete", logger.Fields("turns", 42))
package logger
