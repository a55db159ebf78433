package llm

import (
	"fmt"
	"strings"
)

// Preset names accepted for prompt selection.
const (
	PresetDefault   = "default"
	PresetPodcast   = "podcast"
	PresetAudiobook = "audiobook"
	PresetLecture   = "lecture"
	PresetCustom    = "custom"
)

// DefaultSystemPrompt is used when no preset is selected.
const DefaultSystemPrompt = `You clean up automatic speech-to-text transcripts.
Fix punctuation, capitalization, and obvious recognition mistakes.
Keep the speaker's wording and language; do not summarize, translate, or add commentary.
Return only the corrected transcript.`

// PodcastSystemPrompt targets conversational multi-speaker audio.
const PodcastSystemPrompt = `You clean up automatic transcripts of podcast conversations.
Fix punctuation and capitalization, remove filler sounds and false starts,
and keep the conversational tone intact. Do not summarize or translate.
Return only the corrected transcript.`

// AudiobookSystemPrompt targets narrated long-form prose.
const AudiobookSystemPrompt = `You clean up automatic transcripts of audiobook narration.
Restore punctuation, capitalization, and paragraph flow so the text reads as
published prose. Preserve the author's wording exactly; do not summarize.
Return only the corrected transcript.`

// LectureSystemPrompt targets educational talks with terminology.
const LectureSystemPrompt = `You clean up automatic transcripts of lectures.
Fix punctuation and capitalization, correct misrecognized technical terms
from context, and remove filler sounds. Do not summarize or translate.
Return only the corrected transcript.`

var presetPrompts = map[string]string{
	PresetDefault:   DefaultSystemPrompt,
	PresetPodcast:   PodcastSystemPrompt,
	PresetAudiobook: AudiobookSystemPrompt,
	PresetLecture:   LectureSystemPrompt,
}

// ResolvePrompt maps a preset name (and optional custom prompt text) to the
// system prompt to use. The custom preset requires non-empty custom text.
// An empty preset selects the default prompt.
func ResolvePrompt(preset, custom string) (string, error) {
	preset = strings.ToLower(strings.TrimSpace(preset))
	if preset == "" {
		return DefaultSystemPrompt, nil
	}
	if preset == PresetCustom {
		custom = strings.TrimSpace(custom)
		if custom == "" {
			return "", fmt.Errorf("prompt preset %q requires custom prompt text", PresetCustom)
		}
		return custom, nil
	}
	if prompt, ok := presetPrompts[preset]; ok {
		return prompt, nil
	}
	return "", fmt.Errorf("unknown prompt preset %q", preset)
}
