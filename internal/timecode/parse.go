package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

// supportedForms names the accepted layouts for error messages.
const supportedForms = "SS, MM:SS, HH:MM:SS or HH:MM:SS:MS"

// Parse converts a time string into seconds.
//
// Accepted forms:
//   - "45" or "20.5"   plain seconds, fractions allowed
//   - "1:30"           minutes:seconds, fractional seconds allowed ("1:30.5")
//   - "1:2:30"         hours:minutes:seconds
//   - "1:2:30:500"     hours:minutes:seconds:milliseconds
//
// The four-component form treats the final component as whole milliseconds,
// distinct from a fractional suffix on the seconds component.
func Parse(input string) (float64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, fmt.Errorf("parse timecode: empty input (expected %s)", supportedForms)
	}

	if !strings.Contains(trimmed, ":") {
		value, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, fmt.Errorf("parse timecode %q: %w", input, err)
		}
		return value, nil
	}

	fields := strings.Split(trimmed, ":")
	parts := make([]float64, len(fields))
	for i, field := range fields {
		value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return 0, fmt.Errorf("parse timecode %q: %w", input, err)
		}
		parts[i] = value
	}

	switch len(parts) {
	case 2:
		return parts[0]*60 + parts[1], nil
	case 3:
		return parts[0]*3600 + parts[1]*60 + parts[2], nil
	case 4:
		return parts[0]*3600 + parts[1]*60 + parts[2] + parts[3]/1000, nil
	default:
		return 0, fmt.Errorf("parse timecode %q: unsupported layout (expected %s)", input, supportedForms)
	}
}

// Format renders seconds as HH:MM:SS for operator-facing output.
func Format(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
