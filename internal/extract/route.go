package extract

import (
	"regexp"
	"strconv"

	"github.com/joseph-ayodele/manifest-reader/internal/textnorm"
)

// S, optional separator, optional leading zero, one or two digits.
var reRouteToken = regexp.MustCompile(`(?:^|[^A-Z0-9])S[ \-/]?(0?[0-9]{1,2})(?:[^A-Z0-9]|$)`)

// RouteResolver maps route codes such as "S27" to facility names.
type RouteResolver struct {
	table map[string]string
}

// NewRouteResolver copies table, canonicalizing its keys. Keys that do not
// look like route codes are dropped.
func NewRouteResolver(table map[string]string) *RouteResolver {
	r := &RouteResolver{table: make(map[string]string, len(table))}
	for code, name := range table {
		if key, ok := CanonicalRouteCode(code); ok {
			r.table[key] = name
		}
	}
	return r
}

// Len returns the number of mapped codes.
func (r *RouteResolver) Len() int { return len(r.table) }

// CanonicalRouteCode turns "S-027", "S 27", "s27" into "S27".
func CanonicalRouteCode(token string) (string, bool) {
	m := reRouteToken.FindStringSubmatch(textnorm.Canonical(token))
	if m == nil {
		return "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}
	return "S" + strconv.Itoa(n), true
}

// FindRouteCode returns the first route token of text in canonical form.
func FindRouteCode(text string) (string, bool) {
	return CanonicalRouteCode(text)
}

// Resolve looks up the first route token of text. An unmapped or missing code
// reports ok=false so destination resolution can fall through.
func (r *RouteResolver) Resolve(text string) (string, bool) {
	code, ok := FindRouteCode(text)
	if !ok {
		return "", false
	}
	name, ok := r.table[code]
	return name, ok
}
