package query

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNaturalKey_NumbersBeforeText(t *testing.T) {
	values := []string{"1a", "10", "b", "2", "A", "3.5", "uuid-0f3c"}
	key := NaturalKey(func(s string) string { return s })

	sorted := Sort(values, key, Asc)

	assert.Equal(t, []string{"2", "3.5", "10", "1a", "A", "b", "uuid-0f3c"}, sorted)
	assert.Equal(t, []string{"uuid-0f3c", "b", "A", "1a", "10", "3.5", "2"}, Sort(values, key, Desc))
}

func TestNaturalKey_IsConsistentOrdering(t *testing.T) {
	values := []string{"2", "10", "1a", "02", "x", "X", "-1", "1e3", ""}
	key := NaturalKey(func(s string) string { return s })

	sign := func(n int) int { return max(-1, min(1, n)) }
	for _, a := range values {
		assert.Zero(t, key(a, a), a)
		for _, b := range values {
			assert.Equal(t, -sign(key(a, b)), sign(key(b, a)), "%q vs %q", a, b)
			for _, c := range values {
				if key(a, b) < 0 && key(b, c) < 0 {
					assert.Negative(t, key(a, c), "%q < %q < %q", a, b, c)
				}
			}
		}
	}

	assert.True(t, slices.IsSortedFunc(Sort(values, key, Asc), key))
}
