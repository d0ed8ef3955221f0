// Package sse streams meeting pipeline progress to HTTP clients over
// Server-Sent Events.
//
// A Hub routes events to clients subscribed per meeting; a Notifier adapts
// the hub to the pipeline's progress interface so a running job's stage
// transitions reach every subscriber in real time.
//
//	hub := sse.NewHub()
//	go hub.Run()
//	notifier := sse.NewNotifier(hub, meetingID)
package sse
