package transcript

import (
	"regexp"
	"testing"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestGenerateIDDeterministic(t *testing.T) {
	first := GenerateID("abc123", 60, 120)
	second := GenerateID("abc123", 60, 120)
	if first != second {
		t.Fatalf("same inputs produced different ids: %s vs %s", first, second)
	}
	if !hexDigest.MatchString(first) {
		t.Fatalf("id %q is not a hex sha-256 digest", first)
	}
}

func TestGenerateIDDistinguishesInputs(t *testing.T) {
	base := GenerateID("abc123", 60, 120)
	variants := []string{
		GenerateID("abc124", 60, 120),
		GenerateID("abc123", 61, 120),
		GenerateID("abc123", 60, 121),
		GenerateID("abc123", 60.5, 120),
	}
	seen := map[string]bool{base: true}
	for _, id := range variants {
		if seen[id] {
			t.Fatalf("digest collision for distinct inputs: %s", id)
		}
		seen[id] = true
	}
}
