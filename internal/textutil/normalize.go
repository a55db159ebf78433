package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeSimple applies the rule-based transcript normalization: lower-case
// the text for the given BCP 47 language tag and collapse whitespace runs
// into single spaces. Unrecognized tags fall back to language-neutral casing.
func NormalizeSimple(text, lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Und
	}
	lowered := cases.Lower(tag).String(strings.TrimSpace(text))
	return strings.Join(strings.Fields(lowered), " ")
}
