// Package whisper wraps a Whisper-compatible speech-to-text HTTP API.
package whisper
