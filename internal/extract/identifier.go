package extract

import (
	"regexp"

	"github.com/joseph-ayodele/manifest-reader/internal/textnorm"
)

const (
	minIdentifierLen     = 8
	maxIdentifierLen     = 15
	minBareIdentifierLen = 10
)

var (
	reIdentifierLabel = regexp.MustCompile(`\b(?:NUMERO|N[O°]\.?)\s*[:\-]?\s*(\d{8,})`)
	reDigitRun        = regexp.MustCompile(`\d+`)
)

// ExtractIdentifier returns the manifest number: the digits after a "NUMERO" /
// "Nº" label, else the first bare run of 10 to 15 digits. Runs shorter than 8
// or longer than 15 digits are never returned.
func ExtractIdentifier(text string) (string, bool) {
	return FirstMatch[string](textnorm.Canonical(text), labeledIdentifier, bareIdentifier)
}

func labeledIdentifier(text string) (string, bool) {
	for _, m := range reIdentifierLabel.FindAllStringSubmatch(text, -1) {
		if n := len(m[1]); n >= minIdentifierLen && n <= maxIdentifierLen {
			return m[1], true
		}
	}
	return "", false
}

func bareIdentifier(text string) (string, bool) {
	for _, run := range reDigitRun.FindAllString(text, -1) {
		if n := len(run); n >= minBareIdentifierLen && n <= maxIdentifierLen {
			return run, true
		}
	}
	return "", false
}
