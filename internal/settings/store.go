// Package settings persists per-table column visibility and pinning.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"sync"

	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/tableview"
)

// ErrCorrupt marks a stored document that cannot be decoded
var ErrCorrupt = errors.New("corrupt view settings")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ViewSettings is the persisted per-table override document
type ViewSettings struct {
	ColumnVisibility map[string]bool             `json:"columnVisibility"`
	ColumnSticky     map[string]tableview.Sticky `json:"columnSticky"`
}

// Store loads and saves view settings by key. Load returns
// models.ErrNotFound for unknown keys and ErrCorrupt for undecodable
// documents.
type Store interface {
	Load(ctx context.Context, key string) (*ViewSettings, error)
	Save(ctx context.Context, key string, vs ViewSettings) error
}

func Default() ViewSettings {
	return ViewSettings{
		ColumnVisibility: map[string]bool{},
		ColumnSticky:     map[string]tableview.Sticky{},
	}
}

// ValidateKey rejects keys that are empty or unsafe as file names
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return models.Errorf(models.ErrBadRequest, fmt.Sprintf("invalid settings key %q", key))
	}
	return nil
}

// LoadOrDefault never fails: missing and corrupt entries yield defaults
func LoadOrDefault(ctx context.Context, s Store, key string, logger *slog.Logger) ViewSettings {
	vs, err := s.Load(ctx, key)
	switch {
	case err == nil:
		return *vs
	case errors.Is(err, models.ErrNotFound):
		return Default()
	default:
		logger.Warn("view settings unreadable, using defaults",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return Default()
	}
}

func encode(vs ViewSettings) ([]byte, error) {
	return json.Marshal(normalize(vs))
}

func decode(data []byte) (*ViewSettings, error) {
	var vs ViewSettings
	if err := json.Unmarshal(data, &vs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	vs = normalize(vs)
	return &vs, nil
}

func normalize(vs ViewSettings) ViewSettings {
	out := Default()
	maps.Copy(out.ColumnVisibility, vs.ColumnVisibility)
	for k, side := range vs.ColumnSticky {
		out.ColumnSticky[k] = tableview.ParseSticky(string(side))
	}
	return out
}

// Binding keeps a store in step with an engine's overrides
type Binding struct {
	unsubscribe func()

	saving sync.WaitGroup
	mu     sync.Mutex
	err    error
}

// Bind persists the engine's visibility and sticky overrides whenever they
// change. Saves run in the background; failures are logged and the first
// one is returned by Close.
func Bind(s Store, key string, e *tableview.Engine, logger *slog.Logger) *Binding {
	b := &Binding{}
	b.unsubscribe = e.Subscribe(func(in tableview.Intent) {
		switch in.(type) {
		case tableview.VisibilityToggled, tableview.StickyChanged:
		default:
			return
		}

		b.saving.Add(1)
		go func() {
			defer b.saving.Done()

			b.mu.Lock()
			defer b.mu.Unlock()

			vis, sticky := e.Overrides()
			err := s.Save(context.Background(), key, ViewSettings{ColumnVisibility: vis, ColumnSticky: sticky})
			if err != nil {
				logger.Error("failed to persist view settings",
					slog.String("key", key),
					slog.String("error", err.Error()),
				)
				if b.err == nil {
					b.err = fmt.Errorf("save view settings %s: %w", key, err)
				}
			}
		}()
	})
	return b
}

// Close stops following the engine and waits for pending saves
func (b *Binding) Close() error {
	b.unsubscribe()
	b.saving.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}
