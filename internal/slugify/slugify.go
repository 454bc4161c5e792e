package slugify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL-safe identifier from a free-text title: lowercase,
// diacritics stripped, runs of non-alphanumerics collapsed to single hyphens.
// The transformation is deterministic and idempotent.
func Slugify(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))

	ascii, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		ascii = lowered
	}

	var b strings.Builder
	b.Grow(len(ascii))
	lastHyphen := true // suppress leading hyphens
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
