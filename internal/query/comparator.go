package query

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// SortKey compares two records on one field. Ties return 0.
type SortKey[T any] func(a, b T) int

// Reverse inverts the key's direction
func (k SortKey[T]) Reverse() SortKey[T] {
	return func(a, b T) int { return k(b, a) }
}

// StringKey compares lower-cased strings
func StringKey[T any](field func(T) string) SortKey[T] {
	return func(a, b T) int {
		return strings.Compare(strings.ToLower(field(a)), strings.ToLower(field(b)))
	}
}

// TimeKey compares timestamps at millisecond precision. A nil result sorts
// as the epoch.
func TimeKey[T any](field func(T) *time.Time) SortKey[T] {
	millis := func(t *time.Time) int64 {
		if t == nil || t.IsZero() {
			return 0
		}
		return t.UnixMilli()
	}
	return func(a, b T) int {
		return cmp.Compare(millis(field(a)), millis(field(b)))
	}
}

// BoolKey orders false before true
func BoolKey[T any](field func(T) bool) SortKey[T] {
	num := func(v bool) int {
		if v {
			return 1
		}
		return 0
	}
	return func(a, b T) int {
		return cmp.Compare(num(field(a)), num(field(b)))
	}
}

// NumberKey compares numeric fields
func NumberKey[T any](field func(T) float64) SortKey[T] {
	return func(a, b T) int {
		return cmp.Compare(field(a), field(b))
	}
}

// NaturalKey orders values that parse as numbers before all others.
// Numbers compare numerically and the rest in lower-cased string order.
func NaturalKey[T any](field func(T) string) SortKey[T] {
	return func(a, b T) int {
		av, bv := field(a), field(b)
		an, aerr := strconv.ParseFloat(av, 64)
		bn, berr := strconv.ParseFloat(bv, 64)
		switch {
		case aerr == nil && berr == nil:
			return cmp.Compare(an, bn)
		case aerr == nil:
			return -1
		case berr == nil:
			return 1
		}
		return strings.Compare(strings.ToLower(av), strings.ToLower(bv))
	}
}

// Sort returns a stably sorted copy of records
func Sort[T any](records []T, key SortKey[T], order Order) []T {
	out := slices.Clone(records)
	if key == nil {
		return out
	}
	if order == Desc {
		key = key.Reverse()
	}
	slices.SortStableFunc(out, key)
	return out
}
