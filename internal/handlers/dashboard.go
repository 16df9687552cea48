package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/services"
	pkghttp "github.com/BradenHooton/gridboard/pkg/http"
)

type DashboardService interface {
	GetStats(ctx context.Context) (*services.DashboardStats, error)
}

// DashboardHandler serves the read-only overview endpoints
type DashboardHandler struct {
	service     DashboardService
	permissions func() []models.PermissionInfo
	logger      *slog.Logger
}

func NewDashboardHandler(service DashboardService, permissions func() []models.PermissionInfo, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, permissions: permissions, logger: logger}
}

// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, stats, "")
}

// Permissions lists the permission catalogue
//
// @Router /permissions [get]
func (h *DashboardHandler) Permissions(w http.ResponseWriter, r *http.Request) {
	pkghttp.WriteSuccess(w, http.StatusOK, h.permissions(), "")
}
