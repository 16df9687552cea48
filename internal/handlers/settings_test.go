package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BradenHooton/gridboard/internal/handlers"
	"github.com/BradenHooton/gridboard/internal/settings"
	"github.com/BradenHooton/gridboard/internal/tableview"
)

func settingsRequest(method, key, body string) *http.Request {
	req := handlers.NewRawRequest(method, "/settings/"+key, body)
	return handlers.WithChiRouteContext(req, map[string]string{"key": key})
}

func TestSettings_GetUnknownKeyReturnsDefaults(t *testing.T) {
	h := handlers.NewSettingsHandler(settings.NewMemoryStore(), handlers.NewTestLogger())

	w := httptest.NewRecorder()
	h.Get(w, settingsRequest(http.MethodGet, "users-management-settings", ""))

	var vs settings.ViewSettings
	handlers.DecodeData(t, w, &vs)
	assert.Empty(t, vs.ColumnVisibility)
	assert.Empty(t, vs.ColumnSticky)
}

func TestSettings_SaveNormalizesSticky(t *testing.T) {
	store := settings.NewMemoryStore()
	h := handlers.NewSettingsHandler(store, handlers.NewTestLogger())

	body := `{"columnVisibility":{"email":false},"columnSticky":{"name":"left","sku":"false"}}`
	w := httptest.NewRecorder()
	h.Save(w, settingsRequest(http.MethodPut, "products-management-settings", body))
	require.Equal(t, http.StatusOK, w.Code)

	vs, err := store.Load(context.Background(), "products-management-settings")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"email": false}, vs.ColumnVisibility)
	assert.Equal(t, tableview.StickyLeft, vs.ColumnSticky["name"])
	assert.Equal(t, tableview.StickyNone, vs.ColumnSticky["sku"])
}

func TestSettings_SaveRejectsBadSticky(t *testing.T) {
	h := handlers.NewSettingsHandler(settings.NewMemoryStore(), handlers.NewTestLogger())

	w := httptest.NewRecorder()
	h.Save(w, settingsRequest(http.MethodPut, "users", `{"columnSticky":{"email":"top"}}`))

	handlers.AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestSettings_RejectsUnsafeKey(t *testing.T) {
	h := handlers.NewSettingsHandler(settings.NewMemoryStore(), handlers.NewTestLogger())

	w := httptest.NewRecorder()
	h.Get(w, settingsRequest(http.MethodGet, "../etc", ""))

	handlers.AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestSettings_ResetKeepsSticky(t *testing.T) {
	store := settings.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "users", settings.ViewSettings{
		ColumnVisibility: map[string]bool{"email": false, "lastLoginAt": false},
		ColumnSticky:     map[string]tableview.Sticky{"fullName": tableview.StickyLeft},
	}))
	h := handlers.NewSettingsHandler(store, handlers.NewTestLogger())

	w := httptest.NewRecorder()
	h.Reset(w, settingsRequest(http.MethodPost, "users", ""))
	require.Equal(t, http.StatusOK, w.Code)

	vs, err := store.Load(ctx, "users")
	require.NoError(t, err)
	assert.Empty(t, vs.ColumnVisibility)
	assert.Equal(t, tableview.StickyLeft, vs.ColumnSticky["fullName"])
}
