// Package logging constructs the slog loggers used across the pipeline, with
// a human-oriented console handler and a machine-oriented JSON handler, plus
// helpers that lift pipeline context annotations into structured fields.
package logging
