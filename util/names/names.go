// Package names sanitizes user- and folder-derived strings for use as
// output filenames.
package names

import "strings"

const maxLen = 100

// Sanitize removes characters that are invalid in filenames on common
// platforms, replaces spaces with underscores and caps the length.
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '\\', '/', '*', '?', ':', '"', '<', '>', '|':
			// dropped
		case ' ':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	runes := []rune(b.String())
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}
	return string(runes)
}
