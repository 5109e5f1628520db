package extract

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/manifest-reader/internal/textnorm"
)

// City words may be joined by single spaces or hyphens, so a " - " separator
// never ends up inside the city.
var reCityRegion = regexp.MustCompile(`([A-Z][A-Z.']*(?:[ \-][A-Z.']+)*)\s*[-–]\s*([A-Z]{2})(?:[^A-Z]|$)`)

// DefaultContextKeywords mark a recipient or address block.
var DefaultContextKeywords = []string{
	"DESTINATARIO", "DESTINO", "ENDERECO", "CNPJ", "CPF", "RUA", "AVENIDA", "AV.",
	"ARMAZEM", "GALPAO", "RODOVIA", "ROD.", "ESTRADA", "REMESSA",
}

// DefaultContextLines is the window size: the candidate line plus the two before it.
const DefaultContextLines = 3

// DestinationResolver picks a "CITY - UF" destination out of free text.
type DestinationResolver struct {
	regions      map[string]struct{}
	keywords     []string
	contextLines int
}

// DestinationOption configures a DestinationResolver.
type DestinationOption func(*DestinationResolver)

// WithContextKeywords replaces the address keywords.
func WithContextKeywords(keywords ...string) DestinationOption {
	return func(d *DestinationResolver) {
		d.keywords = d.keywords[:0]
		for _, k := range keywords {
			if k = textnorm.Canonical(strings.TrimSpace(k)); k != "" {
				d.keywords = append(d.keywords, k)
			}
		}
	}
}

// WithContextLines sets how many lines, ending at the candidate's, are searched for keywords.
func WithContextLines(n int) DestinationOption {
	return func(d *DestinationResolver) {
		if n > 0 {
			d.contextLines = n
		}
	}
}

// NewDestinationResolver builds a resolver accepting only the given region codes.
func NewDestinationResolver(regions []string, opts ...DestinationOption) *DestinationResolver {
	d := &DestinationResolver{
		regions:      make(map[string]struct{}, len(regions)),
		keywords:     append([]string(nil), DefaultContextKeywords...),
		contextLines: DefaultContextLines,
	}
	for _, r := range regions {
		d.regions[strings.ToUpper(strings.TrimSpace(r))] = struct{}{}
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type cityCandidate struct {
	line   int
	city   string
	region string
}

func (c cityCandidate) String() string {
	return c.city + " - " + c.region
}

// Resolve returns the first candidate whose context window holds an address
// keyword, else the last candidate in the text.
func (d *DestinationResolver) Resolve(text string) (string, bool) {
	lines := strings.Split(textnorm.Canonical(text), "\n")
	candidates := d.candidates(lines)
	if len(candidates) == 0 {
		return "", false
	}
	for _, c := range candidates {
		if d.inAddressContext(lines, c.line) {
			return c.String(), true
		}
	}
	return candidates[len(candidates)-1].String(), true
}

func (d *DestinationResolver) candidates(lines []string) []cityCandidate {
	var out []cityCandidate
	for i, line := range lines {
		for _, m := range reCityRegion.FindAllStringSubmatch(line, -1) {
			if _, ok := d.regions[m[2]]; !ok {
				continue
			}
			city := strings.Join(strings.Fields(m[1]), " ")
			if city == "" {
				continue
			}
			out = append(out, cityCandidate{line: i, city: city, region: m[2]})
		}
	}
	return out
}

func (d *DestinationResolver) inAddressContext(lines []string, at int) bool {
	start := at - d.contextLines + 1
	if start < 0 {
		start = 0
	}
	for _, line := range lines[start : at+1] {
		for _, kw := range d.keywords {
			if containsWord(line, kw) {
				return true
			}
		}
	}
	return false
}

// containsWord reports whether kw occurs in s not glued to other letters.
func containsWord(s, kw string) bool {
	for from := 0; ; {
		i := strings.Index(s[from:], kw)
		if i < 0 {
			return false
		}
		i += from
		end := i + len(kw)
		before := i == 0 || !isASCIILetter(s[i-1])
		after := end == len(s) || !isASCIILetter(kw[len(kw)-1]) || !isASCIILetter(s[end])
		if before && after {
			return true
		}
		from = i + 1
	}
}

func isASCIILetter(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
