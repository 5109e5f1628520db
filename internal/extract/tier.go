// Package extract holds the single-purpose field matchers run against native
// or OCR text. Each matcher is an ordered list of tiers evaluated with
// first-success short-circuit.
package extract

// Tier is one matching strategy. It reports ok=false when it has nothing to
// offer so the next tier can run.
type Tier[T any] func(text string) (T, bool)

// FirstMatch runs tiers in order and returns the first successful value.
func FirstMatch[T any](text string, tiers ...Tier[T]) (T, bool) {
	for _, tier := range tiers {
		if tier == nil {
			continue
		}
		if v, ok := tier(text); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
