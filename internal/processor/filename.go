package processor

import (
	"fmt"

	"scribe/internal/textutil"
	"scribe/internal/transcript"
)

// deriveBaseName builds the extension-less artifact name. Full-video runs use
// the video id alone; fragment runs append the operator-supplied bounds so
// multiple windows of one video never collide.
func deriveBaseName(meta transcript.VideoMetadata, startRaw, endRaw string, fullVideo bool) string {
	if fullVideo {
		return textutil.SanitizeFileNameMax(meta.ID, textutil.MaxFileNameLength)
	}
	name := fmt.Sprintf("%s_%s_%s",
		meta.ID,
		textutil.SanitizeFileName(startRaw),
		textutil.SanitizeFileName(endRaw),
	)
	return textutil.SanitizeFileNameMax(name, textutil.MaxFileNameLength)
}
