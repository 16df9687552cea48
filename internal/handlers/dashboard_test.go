package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BradenHooton/gridboard/internal/handlers"
	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/query"
	"github.com/BradenHooton/gridboard/internal/services"
)

func TestDashboardStats(t *testing.T) {
	svc := &handlers.MockDashboardService{
		GetStatsFunc: func(ctx context.Context) (*services.DashboardStats, error) {
			return &services.DashboardStats{
				Users:       query.Stats{Total: 300, Active: 285, Inactive: 15},
				Roles:       12,
				Permissions: 13,
			}, nil
		},
	}
	h := handlers.NewDashboardHandler(svc, services.Permissions, handlers.NewTestLogger())

	w := httptest.NewRecorder()
	h.Stats(w, httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil))

	var stats services.DashboardStats
	handlers.DecodeData(t, w, &stats)
	assert.Equal(t, 300, stats.Users.Total)
	assert.Equal(t, 12, stats.Roles)
}

func TestDashboardStats_Error(t *testing.T) {
	svc := &handlers.MockDashboardService{
		GetStatsFunc: func(ctx context.Context) (*services.DashboardStats, error) {
			return nil, errors.New("boom")
		},
	}
	h := handlers.NewDashboardHandler(svc, services.Permissions, handlers.NewTestLogger())

	w := httptest.NewRecorder()
	h.Stats(w, httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil))

	handlers.AssertErrorResponse(t, w, http.StatusInternalServerError, "internal_error")
}

func TestPermissions_Catalogue(t *testing.T) {
	h := handlers.NewDashboardHandler(&handlers.MockDashboardService{}, services.Permissions, handlers.NewTestLogger())

	w := httptest.NewRecorder()
	h.Permissions(w, httptest.NewRequest(http.MethodGet, "/permissions", nil))

	var perms []models.PermissionInfo
	handlers.DecodeData(t, w, &perms)
	assert.NotEmpty(t, perms)
	for _, p := range perms {
		if p.Key == models.PermissionUserSetRole {
			assert.Equal(t, "User Set Role", p.Name)
		}
	}
}
