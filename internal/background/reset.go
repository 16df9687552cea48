package background

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/BradenHooton/gridboard/internal/repositories"
)

// Counter is satisfied by prometheus.Counter
type Counter interface {
	Inc()
}

// DemoResetter periodically restores the in-memory collections to the
// seeded dataset
type DemoResetter struct {
	store    *repositories.Store
	seed     repositories.SeedConfig
	logger   *slog.Logger
	interval time.Duration
	resets   Counter
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewDemoResetter creates a resetter. resets may be nil.
func NewDemoResetter(
	store *repositories.Store,
	seed repositories.SeedConfig,
	logger *slog.Logger,
	interval time.Duration,
	resets Counter,
) *DemoResetter {
	return &DemoResetter{
		store:    store,
		seed:     seed,
		logger:   logger,
		interval: interval,
		resets:   resets,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start runs the reset loop until Stop is called or ctx is done. A
// non-positive interval disables it.
func (d *DemoResetter) Start(ctx context.Context) {
	if d.interval <= 0 {
		d.logger.Info("demo reset disabled")
		return
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Info("demo reset scheduled", slog.Duration("interval", d.interval))

	for {
		select {
		case <-ticker.C:
			d.Reset()
		case <-d.stopCh:
			d.logger.Info("demo resetter stopped")
			return
		case <-ctx.Done():
			d.logger.Info("demo resetter context cancelled")
			return
		}
	}
}

// Reset replaces every collection with a freshly seeded dataset
func (d *DemoResetter) Reset() {
	cfg := d.seed
	cfg.Now = d.now()
	d.store.Replace(repositories.Seed(cfg))

	if d.resets != nil {
		d.resets.Inc()
	}

	users, roles, products := d.store.Counts()
	d.logger.Info("demo dataset reset",
		slog.Int("users", users),
		slog.Int("roles", roles),
		slog.Int("products", products),
	)
}

// Stop signals the resetter to stop. Safe to call more than once.
func (d *DemoResetter) Stop() {
	d.stopOnce.Do(func() { close(d.stopCh) })
}
