// Package numparse turns locale-ambiguous amounts such as "1.234,56" or
// "1,234.56" into decimals and renders them back in the regional format.
package numparse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/manifest-reader/internal/common"
)

var reNumeric = regexp.MustCompile(`^\d*\.?\d*$`)

// Parse infers the decimal separator of raw and returns its value.
//
// Only digits, '.' and ',' are kept. When both separators appear the rightmost
// one is the decimal marker and the other is dropped. A lone ',' is the decimal
// marker. Otherwise '.' is the decimal marker and any ',' is dropped.
// Returns common.ErrUnparseable when nothing numeric remains.
func Parse(raw string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	s := b.String()

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	// more than one decimal marker left over is rejected below
	if lastComma > lastDot {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	if !reNumeric.MatchString(s) || strings.Trim(s, ".") == "" {
		return decimal.Zero, fmt.Errorf("%q: %w", raw, common.ErrUnparseable)
	}
	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q: %w", raw, common.ErrUnparseable)
	}
	return d, nil
}

// FormatBR renders d with two fractional digits, ',' as decimal separator and
// '.' between thousands: 1234.5 -> "1.234,50".
func FormatBR(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "," + frac
}
