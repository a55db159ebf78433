package textutil

import "strings"

// MaxFileNameLength bounds sanitized names so derived paths stay portable.
const MaxFileNameLength = 200

// fileNameReplacer replaces filesystem-unsafe characters with underscores.
var fileNameReplacer = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	"\"", "_",
	"/", "_",
	"\\", "_",
	"|", "_",
	"?", "_",
	"*", "_",
)

// SanitizeFileName replaces each filesystem-unsafe character in name with an
// underscore, trims surrounding whitespace, and truncates the result to
// MaxFileNameLength codepoints.
func SanitizeFileName(name string) string {
	return SanitizeFileNameMax(name, MaxFileNameLength)
}

// SanitizeFileNameMax is SanitizeFileName with an explicit length cap.
// A non-positive cap disables truncation.
func SanitizeFileNameMax(name string, maxLength int) string {
	clean := strings.TrimSpace(fileNameReplacer.Replace(name))
	if maxLength <= 0 {
		return clean
	}
	runes := []rune(clean)
	if len(runes) > maxLength {
		clean = string(runes[:maxLength])
	}
	return clean
}
