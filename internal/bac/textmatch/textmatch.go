// Package textmatch implements the comparisons the publications upstream
// cannot perform itself: accent-insensitive exact matching and document type
// equivalence.
package textmatch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeStr lowercases, trims and strips diacritics, so "Técnico" and
// "tecnico" compare equal.
func NormalizeStr(s string) string {
	// transformer chains keep state and cannot be shared across goroutines
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// ExactMatch compares two labels after normalization.
func ExactMatch(a, b string) bool {
	return NormalizeStr(a) == NormalizeStr(b)
}
