package handlers_test

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BradenHooton/gridboard/internal/handlers"
	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/query"
	"github.com/BradenHooton/gridboard/internal/services"
	"github.com/BradenHooton/gridboard/internal/settings"
	"github.com/BradenHooton/gridboard/internal/tableview"
)

func testUsers() []*models.User {
	return []*models.User{
		services.NewTestUser("1", "admin", "Admin User", "Admin"),
		services.NewTestUser("2", "manager", "Nguyễn Văn Thành Công Minh Khoa", "Manager"),
	}
}

func newTableHandler(store settings.Store) *handlers.TableHandler {
	users := &handlers.MockUserService{
		ListUsersFunc: func(ctx context.Context, spec query.Spec) (query.Result[*models.User], error) {
			return query.Result[*models.User]{Records: testUsers(), Page: 1, Limit: 10}, nil
		},
		SelectUsersFunc: func(ctx context.Context, spec query.Spec) ([]*models.User, error) {
			return testUsers(), nil
		},
	}
	clock := func() time.Time { return time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC) }
	return handlers.NewTableHandler(users, &handlers.MockProductService{}, store, handlers.NewTestLogger()).WithClock(clock)
}

func tableRequest(method, target, key, body string) *http.Request {
	req := handlers.NewRawRequest(method, target, body)
	if body == "" {
		req.ContentLength = 0
	}
	return handlers.WithChiRouteContext(req, map[string]string{"key": key})
}

func TestLayout_AppliesStoredSettings(t *testing.T) {
	store := settings.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "users-management-settings", settings.ViewSettings{
		ColumnVisibility: map[string]bool{"email": false},
		ColumnSticky:     map[string]tableview.Sticky{"fullName": tableview.StickyLeft},
	}))

	w := httptest.NewRecorder()
	newTableHandler(store).Layout(w, tableRequest(http.MethodPost, "/tables/users-management-settings/layout?sortBy=username&sortOrder=desc", "users-management-settings", ""))
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.LayoutResponse
	handlers.DecodeData(t, w, &resp)

	keys := make([]string, len(resp.Columns))
	byKey := map[string]tableview.LayoutColumn{}
	for i, c := range resp.Columns {
		keys[i] = c.Key
		byKey[c.Key] = c
	}
	assert.NotContains(t, keys, "email")
	assert.Equal(t, "no", keys[0])

	require.NotNil(t, byKey["no"].Offset)
	require.NotNil(t, byKey["fullName"].Offset)
	assert.Equal(t, 0, *byKey["no"].Offset)
	assert.Equal(t, byKey["no"].Width, *byKey["fullName"].Offset)

	assert.Equal(t, query.Desc, byKey["username"].Sort)
	assert.Equal(t, 2, resp.Rows)

	total := 0
	for _, c := range resp.Columns {
		total += c.Width
	}
	assert.Equal(t, total, resp.TotalWidth)
}

func TestLayout_MeasuresAutoWidthWithinBounds(t *testing.T) {
	w := httptest.NewRecorder()
	newTableHandler(settings.NewMemoryStore()).Layout(w, tableRequest(http.MethodPost, "/tables/users/layout", "users", ""))
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.LayoutResponse
	handlers.DecodeData(t, w, &resp)
	for _, c := range resp.Columns {
		if c.Key == "fullName" {
			assert.GreaterOrEqual(t, c.Width, 120)
			assert.LessOrEqual(t, c.Width, 250)
		}
	}
}

func TestLayout_ReplaysWidths(t *testing.T) {
	w := httptest.NewRecorder()
	body := `{"widths":{"username":400,"email":500,"createdAt":110}}`
	newTableHandler(settings.NewMemoryStore()).Layout(w, tableRequest(http.MethodPost, "/tables/users/layout", "users", body))
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.LayoutResponse
	handlers.DecodeData(t, w, &resp)
	for _, c := range resp.Columns {
		switch c.Key {
		case "username":
			assert.Equal(t, 400, c.Width)
			assert.True(t, c.Manual)
		case "email":
			assert.Equal(t, 300, c.Width, "clamped to max width")
			assert.True(t, c.Manual)
		case "createdAt":
			assert.Equal(t, 100, c.Width, "fixed columns ignore resizes")
			assert.False(t, c.Manual)
		}
	}
}

func TestLayout_UnknownTable(t *testing.T) {
	w := httptest.NewRecorder()
	newTableHandler(settings.NewMemoryStore()).Layout(w, tableRequest(http.MethodPost, "/tables/orders/layout", "orders", ""))

	handlers.AssertErrorResponse(t, w, http.StatusNotFound, "not_found")
}

func TestExport_CSV(t *testing.T) {
	w := httptest.NewRecorder()
	req := tableRequest(http.MethodGet, "/tables/users/export?format=csv&columns=id,fullName,roles.name", "users", "")
	newTableHandler(settings.NewMemoryStore()).Export(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "user-management-2024-03-05.csv")

	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"ID", "Full name", "Role"}, records[0])
	assert.Equal(t, []string{"1", "Admin User", "Admin"}, records[1])
}

func TestExport_PrintViewIsInline(t *testing.T) {
	w := httptest.NewRecorder()
	newTableHandler(settings.NewMemoryStore()).Export(w, tableRequest(http.MethodGet, "/tables/users/export?format=print", "users", ""))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "<table>")
}

func TestExport_BadParameters(t *testing.T) {
	tests := []struct {
		name   string
		target string
		key    string
		status int
	}{
		{"unknown format", "/tables/users/export?format=docx", "users", http.StatusBadRequest},
		{"unknown column", "/tables/users/export?columns=passwordHash", "users", http.StatusBadRequest},
		{"unknown table", "/tables/orders/export", "orders", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newTableHandler(settings.NewMemoryStore()).Export(w, tableRequest(http.MethodGet, tt.target, tt.key, ""))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
