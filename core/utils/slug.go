package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugSanitizer decomposes accented characters and strips the combining marks,
// so "José María" folds to "Jose Maria" before slugging.
var slugSanitizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify converts an arbitrary title into a URL-safe slug: accents folded,
// lowercased, non-alphanumeric runs collapsed into single dashes.
func Slugify(s string) string {
	folded, _, err := transform.String(slugSanitizer, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(folded) {
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
