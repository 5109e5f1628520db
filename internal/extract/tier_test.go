package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstMatch(t *testing.T) {
	var calls []string
	tier := func(name string, ok bool) Tier[string] {
		return func(text string) (string, bool) {
			calls = append(calls, name)
			return name + ":" + text, ok
		}
	}

	got, ok := FirstMatch("x", tier("a", false), nil, tier("b", true), tier("c", true))
	assert.True(t, ok)
	assert.Equal(t, "b:x", got)
	assert.Equal(t, []string{"a", "b"}, calls)

	calls = nil
	got, ok = FirstMatch("x", tier("a", false))
	assert.False(t, ok)
	assert.Empty(t, got)

	n, ok := FirstMatch[int]("abc")
	assert.False(t, ok)
	assert.Zero(t, n)

	upper, ok := FirstMatch[string]("abc", func(s string) (string, bool) { return strings.ToUpper(s), true })
	assert.True(t, ok)
	assert.Equal(t, "ABC", upper)
}
