// Package observability provides OpenTelemetry tracing and health reporting.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("meetscribe"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "meeting.process")
//	defer span.End()
//
// Health checks aggregate the availability of the diarization and
// transcription backends:
//
//	health := observability.NewServiceHealth("meetscribe", version)
//	health.AddComponent(observability.CheckAvailability(ctx, diarizer))
package observability
