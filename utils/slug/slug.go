package slug

import (
	"strings"
	"unicode"
)

// MaxLen bounds generated slugs, suffix included.
const MaxLen = 160

// Make normalizes a string into a URL-safe slug: lower-case, runs of
// non-alphanumerics collapsed to a single "-", trimmed at both ends.
func Make(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}

	out := strings.Trim(b.String(), "-")
	if len(out) > MaxLen {
		out = strings.Trim(out[:MaxLen], "-")
	}
	return out
}
