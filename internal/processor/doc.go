// Package processor orchestrates the transcription pipeline: metadata fetch,
// segment resolution, audio download, transcription, normalization, and
// persistence of the resulting JSON record.
package processor
