// Package media converts and slices meeting audio with ffmpeg.
//
// All intermediate files live in a job-scoped Workspace that is removed when
// the job ends, on every exit path. The canonical waveform format is mono
// 16 kHz WAV: both the diarization and transcription models are trained
// against it, so sample rate and channel count are fixed, not configurable.
package media
