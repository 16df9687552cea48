package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Predicate decides whether a record survives filtering. A nil predicate
// keeps everything.
type Predicate[T any] func(T) bool

// And combines predicates into a conjunction evaluated in order. Nil entries
// are skipped.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return func(rec T) bool {
		for _, p := range active {
			if !p(rec) {
				return false
			}
		}
		return true
	}
}

// Filter returns the records matching pred, preserving order
func Filter[T any](records []T, pred Predicate[T]) []T {
	if pred == nil {
		out := make([]T, len(records))
		copy(out, records)
		return out
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Search matches when the lower-cased term is a substring of any field
func Search[T any](term string, fields ...func(T) string) Predicate[T] {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	return func(rec T) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(rec)), term) {
				return true
			}
		}
		return false
	}
}

// SplitSet parses a comma separated filter value. "all" and empty input
// produce an empty set.
func SplitSet(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == All {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// OneOf matches records whose field is in the comma separated set.
// fold enables case-insensitive comparison.
func OneOf[T any](raw string, field func(T) string, fold bool) Predicate[T] {
	set := SplitSet(raw)
	if len(set) == 0 {
		return nil
	}
	return func(rec T) bool {
		v := field(rec)
		for _, want := range set {
			if v == want || (fold && strings.EqualFold(v, want)) {
				return true
			}
		}
		return false
	}
}

// Equals matches a single exact value unless raw is empty or "all"
func Equals[T any](raw string, field func(T) string) Predicate[T] {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == All {
		return nil
	}
	return func(rec T) bool {
		return field(rec) == raw
	}
}

// TriState filters a boolean field by "active"/"inactive" style values.
// Any other value disables the filter.
func TriState[T any](raw, trueValue, falseValue string, field func(T) bool) Predicate[T] {
	switch raw {
	case trueValue:
		return func(rec T) bool { return field(rec) }
	case falseValue:
		return func(rec T) bool { return !field(rec) }
	default:
		return nil
	}
}

// NumberRange keeps records with from <= field <= to. Unparsable or empty
// bounds are ignored.
func NumberRange[T any](from, to string, field func(T) float64) Predicate[T] {
	lo, hasLo := parseNumber(from)
	hi, hasHi := parseNumber(to)
	if !hasLo && !hasHi {
		return nil
	}
	return func(rec T) bool {
		v := field(rec)
		if hasLo && v < lo {
			return false
		}
		if hasHi && v > hi {
			return false
		}
		return true
	}
}

// DateRange keeps records with from <= field <= to. A date-only upper bound
// means midnight of that day.
func DateRange[T any](from, to string, field func(T) time.Time) Predicate[T] {
	lo, hasLo := parseDate(from)
	hi, hasHi := parseDate(to)
	if !hasLo && !hasHi {
		return nil
	}
	return func(rec T) bool {
		v := field(rec)
		if hasLo && v.Before(lo) {
			return false
		}
		if hasHi && v.After(hi) {
			return false
		}
		return true
	}
}

// Unless drops records matching exclude when enabled is false
func Unless[T any](enabled bool, exclude func(T) bool) Predicate[T] {
	if enabled {
		return nil
	}
	return func(rec T) bool { return !exclude(rec) }
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
