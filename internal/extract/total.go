package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/manifest-reader/internal/numparse"
	"github.com/joseph-ayodele/manifest-reader/internal/textnorm"
)

var (
	// matched within a single line
	reTotalLabel = regexp.MustCompile(
		`VALOR[ \t]+TOTAL[ \t]+DO[ \t]+MANIFESTO[ \t]*[:\-]?[ \t]*(?:R\$[ \t]*)?(\d[\d.,]*(?:[ \t]\d{3}(?:[.,]\d+)?)*)`)
	reMoney     = regexp.MustCompile(`\d+(?:[.,]\d{3})*[.,]\d{2}`)
	reTotalWord = regexp.MustCompile(`\bTOTAL\b`)
)

// ExtractTotalValue returns the manifest total rounded to two places. Tiers:
// the "VALOR TOTAL DO MANIFESTO" line, then money-shaped amounts on lines
// mentioning TOTAL in document order, then the last money-shaped amount.
// A candidate that does not parse falls through to the next one.
func ExtractTotalValue(text string) (decimal.Decimal, bool) {
	return FirstMatch[decimal.Decimal](textnorm.Canonical(text), labeledTotal, totalLineAmount, lastAmount)
}

// labeledTotal reads the amount on the label's own line. A label line without
// a parseable amount leaves the field to the next tier.
func labeledTotal(text string) (decimal.Decimal, bool) {
	for _, line := range strings.Split(text, "\n") {
		for _, m := range reTotalLabel.FindAllStringSubmatch(line, -1) {
			if v, err := numparse.Parse(m[1]); err == nil {
				return v.Round(2), true
			}
		}
	}
	return decimal.Zero, false
}

func totalLineAmount(text string) (decimal.Decimal, bool) {
	for _, line := range strings.Split(text, "\n") {
		if !reTotalWord.MatchString(line) {
			continue
		}
		for _, amount := range moneyAmounts(line) {
			if v, err := numparse.Parse(amount); err == nil {
				return v.Round(2), true
			}
		}
	}
	return decimal.Zero, false
}

func lastAmount(text string) (decimal.Decimal, bool) {
	amounts := moneyAmounts(text)
	for i := len(amounts) - 1; i >= 0; i-- {
		if v, err := numparse.Parse(amounts[i]); err == nil {
			return v.Round(2), true
		}
	}
	return decimal.Zero, false
}

// moneyAmounts lists "1.234,56"-shaped substrings not followed by another digit.
func moneyAmounts(s string) []string {
	var out []string
	for _, loc := range reMoney.FindAllStringIndex(s, -1) {
		if loc[1] < len(s) && isDigit(s[loc[1]]) {
			continue
		}
		out = append(out, s[loc[0]:loc[1]])
	}
	return out
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
