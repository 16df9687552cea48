package settings

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/tableview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() ViewSettings {
	return ViewSettings{
		ColumnVisibility: map[string]bool{"email": false, "username": true},
		ColumnSticky:     map[string]tableview.Sticky{"fullName": tableview.StickyLeft},
	}
}

func testStores(t *testing.T) map[string]Store {
	fileStore, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fileStore,
	}
}

func TestStores_SaveThenLoad(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Save(ctx, "users-management-settings", sample()))
			got, err := store.Load(ctx, "users-management-settings")

			require.NoError(t, err)
			assert.Equal(t, sample(), *got)
		})
	}
}

func TestStores_MissingKey(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load(context.Background(), "nothing-here")

			assert.ErrorIs(t, err, models.ErrNotFound)
		})
	}
}

func TestStores_RejectUnsafeKeys(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			err := store.Save(context.Background(), "../escape", sample())

			assert.ErrorIs(t, err, models.ErrBadRequest)
		})
	}
}

func TestLoadOrDefault_CorruptMemoryDocument(t *testing.T) {
	store := NewMemoryStore()
	store.put("products", []byte("{not json"))

	_, err := store.Load(context.Background(), "products")
	assert.ErrorIs(t, err, ErrCorrupt)

	vs := LoadOrDefault(context.Background(), store, "products", slog.Default())
	assert.Equal(t, Default(), vs)
}

func TestLoadOrDefault_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte("[]]"), 0o644))

	vs := LoadOrDefault(context.Background(), store, "users", slog.Default())

	assert.Equal(t, Default(), vs)
}

func TestDecode_NormalizesStickyAndNilMaps(t *testing.T) {
	vs, err := decode([]byte(`{"columnSticky":{"a":"diagonal","b":"right"}}`))

	require.NoError(t, err)
	assert.NotNil(t, vs.ColumnVisibility)
	assert.Equal(t, tableview.StickyNone, vs.ColumnSticky["a"])
	assert.Equal(t, tableview.StickyRight, vs.ColumnSticky["b"])
}

func TestBind_PersistsOverrides(t *testing.T) {
	store := NewMemoryStore()
	engine := tableview.New(tableview.Config{Columns: tableview.UserColumns()})
	engine.Mount(nil)

	binding := Bind(store, "users", engine, slog.Default())

	engine.SetVisibility("email", false)
	engine.SetSticky("username", tableview.StickyLeft)
	require.NoError(t, binding.Close())

	vs, err := store.Load(context.Background(), "users")
	require.NoError(t, err)
	assert.False(t, vs.ColumnVisibility["email"])
	assert.Equal(t, tableview.StickyLeft, vs.ColumnSticky["username"])
}

func TestBind_IgnoresOtherIntents(t *testing.T) {
	store := NewMemoryStore()
	engine := tableview.New(tableview.Config{Columns: tableview.UserColumns()})
	engine.Mount(nil)

	binding := Bind(store, "users", engine, slog.Default())
	engine.RequestSort("email")
	require.NoError(t, binding.Close())

	_, err := store.Load(context.Background(), "users")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestBind_CloseStopsSaving(t *testing.T) {
	store := NewMemoryStore()
	engine := tableview.New(tableview.Config{Columns: tableview.UserColumns()})
	engine.Mount(nil)

	binding := Bind(store, "users", engine, slog.Default())
	require.NoError(t, binding.Close())
	engine.SetVisibility("email", false)

	_, err := store.Load(context.Background(), "users")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestBind_CloseReportsSaveFailure(t *testing.T) {
	engine := tableview.New(tableview.Config{Columns: tableview.UserColumns()})
	engine.Mount(nil)

	binding := Bind(NewMemoryStore(), "../escape", engine, slog.Default())
	engine.SetVisibility("email", false)

	err := binding.Close()
	assert.ErrorIs(t, err, models.ErrBadRequest)
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, ValidateKey("users-management-settings"))
	assert.NoError(t, ValidateKey("products.v2"))
	assert.Error(t, ValidateKey(""))
	assert.Error(t, ValidateKey(".hidden"))
	assert.Error(t, ValidateKey("a/b"))
}
