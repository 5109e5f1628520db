package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/manifest-reader/internal/textnorm"
)

// DefaultVolumeMaxPlausible bounds the bare leading-integer heuristic (exclusive).
const DefaultVolumeMaxPlausible = 1000

var (
	reVolumeLabel = regexp.MustCompile(`\bVOLUMES?\b\s*[:\-]?\s*([0-9]{1,6})\b`)
	reDottedTail  = regexp.MustCompile(`(?m)(?:^|[^\d.,])(\d+)\.(\d+)[ \t\r]*$`)
	reLeadingInt  = regexp.MustCompile(`^(\d+)(?:\D|$)`)
)

// VolumeAggregator sums per-page item counts.
type VolumeAggregator struct {
	maxPlausible int
}

// NewVolumeAggregator returns an aggregator whose last-resort heuristic only
// accepts integers in (0, maxPlausible). Non-positive values use the default.
func NewVolumeAggregator(maxPlausible int) *VolumeAggregator {
	if maxPlausible <= 0 {
		maxPlausible = DefaultVolumeMaxPlausible
	}
	return &VolumeAggregator{maxPlausible: maxPlausible}
}

// Aggregate returns the sum of PageCount over pages.
func (a *VolumeAggregator) Aggregate(pages []string) int {
	total := 0
	for _, p := range pages {
		total += a.PageCount(p)
	}
	return total
}

// PageCount returns one page's contribution: a "VOLUMES" label, else the
// leading number of a dotted pair at a line's end, else a plausible integer
// opening the first non-empty line. Zero when nothing matches.
func (a *VolumeAggregator) PageCount(page string) int {
	n, _ := FirstMatch[int](textnorm.Canonical(page), labeledVolumes, dottedTailVolumes, a.leadingIntVolumes)
	return n
}

func labeledVolumes(text string) (int, bool) {
	m := reVolumeLabel.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}

func dottedTailVolumes(text string) (int, bool) {
	m := reDottedTail.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}

func (a *VolumeAggregator) leadingIntVolumes(text string) (int, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := reLeadingInt.FindStringSubmatch(line)
		if m == nil {
			return 0, false
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 || n >= a.maxPlausible {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
