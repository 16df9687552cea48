package integration

import (
	"encoding/csv"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BradenHooton/gridboard/internal/settings"
	"github.com/BradenHooton/gridboard/internal/tableview"
)

type usersList struct {
	Success bool `json:"success"`
	Data    []struct {
		ID       string `json:"id"`
		IsActive bool   `json:"isActive"`
	} `json:"data"`
	Total         int `json:"total"`
	TotalFiltered int `json:"totalFiltered"`
	Page          int `json:"page"`
	TotalPages    int `json:"totalPages"`
}

type layoutBody struct {
	Success bool `json:"success"`
	Data    struct {
		Columns []tableview.LayoutColumn `json:"columns"`
		Rows    int                      `json:"rows"`
	} `json:"data"`
}

func TestAPI_RequiresSession(t *testing.T) {
	ts := NewTestServer(settings.NewMemoryStore())
	defer ts.Close()

	resp, err := ts.Request(http.MethodGet, "/users", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp, err = ts.RequestWithSession(http.MethodGet, "/session", AdminToken, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_ListUsersWithFilters(t *testing.T) {
	ts := NewTestServer(settings.NewMemoryStore())
	defer ts.Close()

	resp, err := ts.RequestWithSession(http.MethodGet, "/users?page=2&limit=5", UserToken, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body usersList
	require.NoError(t, ParseJSONResponse(resp, &body))
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 6, body.TotalPages)
	assert.Equal(t, 30, body.Total)
	assert.Len(t, body.Data, 5)

	resp, err = ts.RequestWithSession(http.MethodGet, "/users?limit=100&showInactive=false", UserToken, nil)
	require.NoError(t, err)

	body = usersList{}
	require.NoError(t, ParseJSONResponse(resp, &body))
	assert.Len(t, body.Data, body.TotalFiltered)
	for _, u := range body.Data {
		assert.True(t, u.IsActive, u.ID)
	}
}

func TestAPI_HugePageIsEmpty(t *testing.T) {
	ts := NewTestServer(settings.NewMemoryStore())
	defer ts.Close()

	resp, err := ts.RequestWithSession(http.MethodGet, "/users?page=9223372036854775807&limit=2", UserToken, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body usersList
	require.NoError(t, ParseJSONResponse(resp, &body))
	assert.Empty(t, body.Data)
	assert.Equal(t, 30, body.TotalFiltered)
	assert.Equal(t, 15, body.TotalPages)
}

func TestAPI_MutationsNeedEditor(t *testing.T) {
	ts := NewTestServer(settings.NewMemoryStore())
	defer ts.Close()

	role := map[string]any{"name": "Auditor", "color": "#336699"}

	resp, err := ts.RequestWithSession(http.MethodPost, "/roles", UserToken, role)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp, err = ts.RequestWithSession(http.MethodPost, "/roles", EditorToken, role)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_SettingsDriveLayout(t *testing.T) {
	ts := NewTestServer(settings.NewMemoryStore())
	defer ts.Close()

	resp, err := ts.RequestWithSession(http.MethodPut, "/settings/"+UsersSettingsKey, AdminToken, map[string]any{
		"columnVisibility": map[string]bool{"email": false},
		"columnSticky":     map[string]string{"fullName": "left"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = ts.RequestWithSession(http.MethodPost, "/tables/"+UsersSettingsKey+"/layout", AdminToken, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body layoutBody
	require.NoError(t, ParseJSONResponse(resp, &body))
	assert.Equal(t, 10, body.Data.Rows)

	offsets := map[string]int{}
	for _, col := range body.Data.Columns {
		assert.NotEqual(t, "email", col.Key)
		if col.Offset != nil {
			offsets[col.Key] = *col.Offset
		}
	}
	assert.Equal(t, 0, offsets["no"])
	assert.Contains(t, offsets, "fullName")
	assert.Positive(t, offsets["fullName"])

	resp, err = ts.RequestWithSession(http.MethodPost, "/settings/"+UsersSettingsKey+"/reset", AdminToken, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	vs := settings.LoadOrDefault(t.Context(), ts.Settings, UsersSettingsKey, ts.logger)
	assert.Empty(t, vs.ColumnVisibility)
	assert.Equal(t, tableview.StickyLeft, vs.ColumnSticky["fullName"])
}

func TestAPI_ExportCSV(t *testing.T) {
	ts := NewTestServer(settings.NewMemoryStore())
	defer ts.Close()

	resp, err := ts.RequestWithSession(http.MethodGet, "/tables/users/export?format=csv&columns=id,email", AdminToken, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "user-management-")

	records, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 31)
	assert.Equal(t, []string{"ID", "Email"}, records[0])
}

func TestAPI_DashboardStats(t *testing.T) {
	ts := NewTestServer(settings.NewMemoryStore())
	defer ts.Close()

	resp, err := ts.RequestWithSession(http.MethodGet, "/dashboard/stats", AdminToken, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Users struct {
				Total int `json:"total"`
			} `json:"users"`
			Roles    int `json:"roles"`
			Products struct {
				Total int `json:"total"`
			} `json:"products"`
		} `json:"data"`
	}
	require.NoError(t, ParseJSONResponse(resp, &body))
	assert.Equal(t, 30, body.Data.Users.Total)
	assert.Equal(t, 12, body.Data.Roles)
	assert.Equal(t, 20, body.Data.Products.Total)
}
