// Package textnorm produces the diacritic-free text form every matcher compares against.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize decomposes s (NFKD) and drops combining marks. Case, digits and
// punctuation are preserved. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	// transform.Chain keeps state, so one chain per call.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Canonical is Normalize followed by upper-casing; the form used by route,
// destination and label matching.
func Canonical(s string) string {
	return strings.ToUpper(Normalize(s))
}
