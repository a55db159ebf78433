// Command scribe downloads a segment of an online video, transcribes it via a
// Whisper-compatible API, optionally normalizes the transcript with an LLM,
// and persists the result as JSON next to the extracted FLAC audio.
package main
