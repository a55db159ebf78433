package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors classifying pipeline failures. Stage boundaries wrap the
// underlying cause with exactly one of these markers so callers can decide
// between aborting and degrading.
var (
	ErrInvalidFormat       = errors.New("invalid time format")
	ErrInvalidRange        = errors.New("invalid time range")
	ErrSourceUnavailable   = errors.New("source unavailable")
	ErrDownloadFailed      = errors.New("download failed")
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrNormalizationFailed = errors.New("normalization failed")
	ErrConfiguration       = errors.New("configuration error")
	ErrExternalTool        = errors.New("external tool error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether the error must abort the pipeline. Normalization is
// the only recoverable stage.
func Fatal(err error) bool {
	return err != nil && !errors.Is(err, ErrNormalizationFailed)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
