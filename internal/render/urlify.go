package render

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Urlify converts a display string into a URL/anchor-safe identifier:
// accents stripped, lowercased, runs of non-alphanumerics collapsed to
// single dashes. Matches the anchor ids the client-side scrollspy
// derives from headings.
func Urlify(s string) string {
	if folded, _, err := transform.String(deaccent, s); err == nil {
		s = folded
	}

	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
