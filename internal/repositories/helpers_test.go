package repositories

import (
	"testing"
	"time"

	"github.com/BradenHooton/gridboard/internal/models"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestStore returns a store seeded with a small deterministic dataset
// and a clock that advances one second per call.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	tick := testNow
	store := NewStore(NoLatency{}, WithClock(func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}))
	store.Replace(Seed(SeedConfig{Seed: 7, Users: 25, Products: 12, Now: testNow}))
	return store
}

func ptr[T any](v T) *T {
	return &v
}

func roleByName(t *testing.T, roles []models.Role, name string) models.Role {
	t.Helper()
	for _, r := range roles {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("role %q not seeded", name)
	return models.Role{}
}
