package repositories

import (
	"context"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/BradenHooton/gridboard/internal/models"
)

// Latency simulates the round trip of a remote backend
type Latency interface {
	Wait(ctx context.Context) error
}

// NoLatency returns immediately unless ctx is already done
type NoLatency struct{}

func (NoLatency) Wait(ctx context.Context) error {
	return ctx.Err()
}

// JitteredLatency waits Base plus a random share of Jitter
type JitteredLatency struct {
	Base   time.Duration
	Jitter time.Duration
}

func (l JitteredLatency) Wait(ctx context.Context) error {
	d := l.Base
	if l.Jitter > 0 {
		d += rand.N(l.Jitter)
	}
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NewLatency returns NoLatency when both durations are zero
func NewLatency(base, jitter time.Duration) Latency {
	if base <= 0 && jitter <= 0 {
		return NoLatency{}
	}
	return JitteredLatency{Base: base, Jitter: jitter}
}

// Dataset is a full snapshot of the demo collections
type Dataset struct {
	Users      []*models.User
	Roles      []models.Role
	Categories []models.Category
	Products   []*models.Product
}

// Store is the in-memory backing collection shared by the repositories.
// Construct it once and inject it; a fresh Store per test isolates state.
type Store struct {
	mu sync.RWMutex

	users      []*models.User
	roles      []models.Role
	categories []models.Category
	products   []*models.Product

	nextUserID int
	nextRoleID int

	latency Latency
	now     func() time.Time
}

type StoreOption func(*Store)

// WithClock overrides the time source used for timestamps
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(latency Latency, opts ...StoreOption) *Store {
	if latency == nil {
		latency = NoLatency{}
	}
	s := &Store{latency: latency, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Replace swaps in a new dataset, e.g. on demo reset
func (s *Store) Replace(d Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make([]*models.User, len(d.Users))
	for i, u := range d.Users {
		s.users[i] = u.Clone()
	}
	s.roles = make([]models.Role, len(d.Roles))
	for i, r := range d.Roles {
		s.roles[i] = r.Clone()
	}
	s.categories = append([]models.Category(nil), d.Categories...)
	s.products = make([]*models.Product, len(d.Products))
	for i, p := range d.Products {
		s.products[i] = p.Clone()
	}

	s.nextUserID = maxNumericID(len(s.users), func(i int) string { return s.users[i].ID }) + 1
	s.nextRoleID = maxNumericID(len(s.roles), func(i int) string { return s.roles[i].ID }) + 1
}

// Counts reports collection sizes
func (s *Store) Counts() (users, roles, products int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), len(s.roles), len(s.products)
}

func maxNumericID(n int, id func(int) string) int {
	highest := 0
	for i := 0; i < n; i++ {
		if v, err := strconv.Atoi(id(i)); err == nil && v > highest {
			highest = v
		}
	}
	return highest
}
