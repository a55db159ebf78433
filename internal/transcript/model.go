package transcript

import "strings"

// DefaultVoiceDescription is recorded when the operator supplies no explicit
// voice description.
const DefaultVoiceDescription = "Голос: unknown, unknown, телосложение: unknown; " +
	"тембр — яркость: unknown, шероховатость: unknown, придыхательность: unknown."

// VideoMetadata describes the source video as reported by the media backend.
// Created once per invocation, never mutated.
type VideoMetadata struct {
	ID              string // sanitized, filesystem-safe
	DurationSeconds float64
	SpeakerID       string
	DisplayName     string
}

// TimeSegment is a [start, end) window of the source media, in seconds.
type TimeSegment struct {
	Start float64
	End   float64
}

// Duration returns the segment length in seconds.
func (s TimeSegment) Duration() float64 {
	return s.End - s.Start
}

// IsValid reports whether the segment satisfies start >= 0 and end > start.
func (s TimeSegment) IsValid() bool {
	return s.Start >= 0 && s.End > s.Start
}

// ValidateRange reports whether [start, end) is a usable window within media
// of the given total duration. A non-positive totalDuration means the
// duration is unknown and the upper bound is not enforced.
func ValidateRange(start, end, totalDuration float64) bool {
	if start < 0 || end <= start {
		return false
	}
	if totalDuration > 0 && end > totalDuration {
		return false
	}
	return true
}

// Text carries the transcript in raw and normalized forms.
type Text struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
}

// SegmentSeconds is the serialized form of a TimeSegment.
type SegmentSeconds struct {
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	DurationSec float64 `json:"duration_sec"`
}

// Source identifies where the audio came from.
type Source struct {
	Type    string         `json:"type"`
	ID      string         `json:"id"`
	Segment SegmentSeconds `json:"segment_sec"`
}

// Speaker identifies the voice behind the media for dataset grouping.
type Speaker struct {
	ID               string `json:"id"`
	VoiceDescription string `json:"voice_description"`
}

// Result is the record persisted for one transcribed segment.
type Result struct {
	ID      string  `json:"id"`
	Lang    string  `json:"lang"`
	Text    Text    `json:"text"`
	Source  Source  `json:"source"`
	Speaker Speaker `json:"speaker"`
}

// NewResult assembles the persisted record from the pipeline's parts. An
// empty normalized text falls back to the raw text; an empty voice
// description falls back to DefaultVoiceDescription.
func NewResult(meta VideoMetadata, segment TimeSegment, raw, normalized, lang, sourceType, voiceDesc string) Result {
	if strings.TrimSpace(normalized) == "" {
		normalized = raw
	}
	if strings.TrimSpace(voiceDesc) == "" {
		voiceDesc = DefaultVoiceDescription
	}
	return Result{
		ID:   GenerateID(meta.ID, segment.Start, segment.End),
		Lang: lang,
		Text: Text{Raw: raw, Normalized: normalized},
		Source: Source{
			Type: sourceType,
			ID:   meta.ID,
			Segment: SegmentSeconds{
				Start:       segment.Start,
				End:         segment.End,
				DurationSec: segment.Duration(),
			},
		},
		Speaker: Speaker{ID: meta.SpeakerID, VoiceDescription: voiceDesc},
	}
}
