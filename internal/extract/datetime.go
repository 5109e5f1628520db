package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/manifest-reader/internal/textnorm"
)

var reHeaderDateTime = regexp.MustCompile(
	`(?i)\b(\d{1,2})\s+(jan|fev|mar|abr|mai|jun|jul|ago|set|out|nov|dez)\s+(\d{4})\s+(\d{2}:\d{2}:\d{2})`)

var monthNumbers = map[string]int{
	"jan": 1, "fev": 2, "mar": 3, "abr": 4, "mai": 5, "jun": 6,
	"jul": 7, "ago": 8, "set": 9, "out": 10, "nov": 11, "dez": 12,
}

// DateTime is an issue date (DD/MM/YYYY) and time (HH:MM:SS).
type DateTime struct {
	Date string
	Time string
}

// ExtractHeaderDateTime finds a header stamp such as "Sáb, 11 out 2025 22:03:28".
// A miss yields two empty strings.
func ExtractHeaderDateTime(text string) (date, clock string) {
	dt, ok := HeaderDateTime(text)
	if !ok {
		return "", ""
	}
	return dt.Date, dt.Time
}

// HeaderDateTime is the Tier form of ExtractHeaderDateTime.
func HeaderDateTime(text string) (DateTime, bool) {
	for _, m := range reHeaderDateTime.FindAllStringSubmatch(textnorm.Normalize(text), -1) {
		day, err := strconv.Atoi(m[1])
		if err != nil || day < 1 || day > 31 {
			continue
		}
		month := monthNumbers[strings.ToLower(m[2])]
		return DateTime{
			Date: fmt.Sprintf("%02d/%02d/%s", day, month, m[3]),
			Time: m[4],
		}, true
	}
	return DateTime{}, false
}
