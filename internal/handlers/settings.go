package handlers

import (
	"log/slog"
	"maps"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/settings"
	"github.com/BradenHooton/gridboard/internal/tableview"
	pkghttp "github.com/BradenHooton/gridboard/pkg/http"
)

// SettingsHandler reads and writes per-table view settings
type SettingsHandler struct {
	store  settings.Store
	logger *slog.Logger
}

func NewSettingsHandler(store settings.Store, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{store: store, logger: logger}
}

type SaveSettingsRequest struct {
	ColumnVisibility map[string]bool   `json:"columnVisibility"`
	ColumnSticky     map[string]string `json:"columnSticky" validate:"dive,oneof=left right none false"`
}

func (h *SettingsHandler) RegisterRoutes(router chi.Router) {
	router.Route("/settings/{key}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Save)
		r.Post("/reset", h.Reset)
	})
}

func (h *SettingsHandler) key(w http.ResponseWriter, r *http.Request) (string, bool) {
	key := chi.URLParam(r, "key")
	if err := settings.ValidateKey(key); err != nil {
		pkghttp.WriteBadRequest(w, models.Reason(err))
		return "", false
	}
	return key, true
}

// Get returns the stored settings; unknown and unreadable keys yield the
// defaults
//
// @Router /settings/{key} [get]
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	key, ok := h.key(w, r)
	if !ok {
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, settings.LoadOrDefault(r.Context(), h.store, key, h.logger), "")
}

// @Router /settings/{key} [put]
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	key, ok := h.key(w, r)
	if !ok {
		return
	}

	var req SaveSettingsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	vs := settings.Default()
	maps.Copy(vs.ColumnVisibility, req.ColumnVisibility)
	for k, side := range req.ColumnSticky {
		vs.ColumnSticky[k] = tableview.ParseSticky(side)
	}

	if err := h.store.Save(r.Context(), key, vs); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, vs, "Settings saved")
}

// Reset clears the visibility overrides. Pinning is kept.
//
// @Router /settings/{key}/reset [post]
func (h *SettingsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	key, ok := h.key(w, r)
	if !ok {
		return
	}

	vs := settings.LoadOrDefault(r.Context(), h.store, key, h.logger)
	vs.ColumnVisibility = map[string]bool{}

	if err := h.store.Save(r.Context(), key, vs); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, vs, "Column visibility reset")
}
