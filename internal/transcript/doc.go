// Package transcript holds the value objects the pipeline works with: video
// metadata, time segments, and the persisted transcription result, along with
// the content-addressed identifier derivation and JSON persistence rules.
package transcript
