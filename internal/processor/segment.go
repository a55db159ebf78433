package processor

import (
	"fmt"
	"strings"

	"scribe/internal/services"
	"scribe/internal/timecode"
	"scribe/internal/transcript"
)

// resolveSegment turns the raw start/end strings into a concrete time window.
// Fragment mode requires both bounds; when either is absent the whole media is
// selected, fullVideo is true, and the segment spans [0, totalDuration].
func resolveSegment(startRaw, endRaw string, totalDuration float64) (transcript.TimeSegment, bool, error) {
	startRaw = strings.TrimSpace(startRaw)
	endRaw = strings.TrimSpace(endRaw)

	if startRaw == "" || endRaw == "" {
		return transcript.TimeSegment{Start: 0, End: totalDuration}, true, nil
	}

	start, err := timecode.Parse(startRaw)
	if err != nil {
		return transcript.TimeSegment{}, false, services.Wrap(services.ErrInvalidFormat, "segment", "parse start", "", err)
	}
	end, err := timecode.Parse(endRaw)
	if err != nil {
		return transcript.TimeSegment{}, false, services.Wrap(services.ErrInvalidFormat, "segment", "parse end", "", err)
	}

	if !transcript.ValidateRange(start, end, totalDuration) {
		detail := fmt.Sprintf("range [%s, %s) is not within media of %s seconds",
			timecode.Format(start), timecode.Format(end), formatSeconds(totalDuration))
		return transcript.TimeSegment{}, false, services.Wrap(services.ErrInvalidRange, "segment", "validate", detail, nil)
	}

	return transcript.TimeSegment{Start: start, End: end}, false, nil
}

func formatSeconds(value float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", value), "0"), ".")
}
