// Package meeting orchestrates the transcription pipeline: normalize the
// input media, partition it into speaker turns, transcribe each turn, and
// merge the results into a speaker-attributed transcript.
//
// One orchestrator serves both modes. With the pyannote backend the turns
// come from a real diarization model; with the whole-file backend a single
// synthetic turn covers the entire recording. Per-turn failures are absorbed
// so one bad segment never aborts a multi-hour meeting, except in whole-file
// mode where the single turn is all there is.
package meeting
