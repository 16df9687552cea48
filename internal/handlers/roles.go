package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/repositories"
	pkghttp "github.com/BradenHooton/gridboard/pkg/http"
)

// RoleService defines the interface for role business logic
type RoleService interface {
	ListRoles(ctx context.Context) ([]models.Role, error)
	GetRole(ctx context.Context, id string) (*models.Role, error)
	CreateRole(ctx context.Context, role models.Role) (*models.Role, error)
	UpdateRole(ctx context.Context, id string, patch repositories.RolePatch) (*models.Role, error)
	DeleteRole(ctx context.Context, id string) error
	SetPermissions(ctx context.Context, id string, permissions []string) (*models.Role, error)
}

type RoleHandler struct {
	service  RoleService
	logger   *slog.Logger
	ipConfig *pkghttp.IPConfig
}

func NewRoleHandler(service RoleService, logger *slog.Logger, ipConfig *pkghttp.IPConfig) *RoleHandler {
	return &RoleHandler{service: service, logger: logger, ipConfig: ipConfig}
}

type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required,max=64"`
	Description string   `json:"description" validate:"max=256"`
	Color       string   `json:"color" validate:"omitempty,hexcolor"`
	Permissions []string `json:"permissions"`
}

type UpdateRoleRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=1,max=64"`
	Description *string   `json:"description" validate:"omitempty,max=256"`
	Color       *string   `json:"color" validate:"omitempty,hexcolor"`
	Permissions *[]string `json:"permissions"`
}

func (h *RoleHandler) RegisterRoutes(router chi.Router, mutate func(http.Handler) http.Handler) {
	router.Route("/roles", func(r chi.Router) {
		r.Get("/", h.ListRoles)
		r.Get("/{id}", h.GetRole)

		r.Group(func(r chi.Router) {
			r.Use(mutate)
			r.Post("/", h.CreateRole)
			r.Put("/{id}", h.UpdateRole)
			r.Delete("/{id}", h.DeleteRole)
			r.Put("/{id}/permissions", h.SetPermissions)
		})
	})
}

// @Router /roles [get]
func (h *RoleHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.service.ListRoles(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if roles == nil {
		roles = []models.Role{}
	}

	pkghttp.WriteSuccess(w, http.StatusOK, roles, "")
}

// @Router /roles/{id} [get]
func (h *RoleHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	role, err := h.service.GetRole(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, role, "")
}

// @Router /roles [post]
func (h *RoleHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req CreateRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	role, err := h.service.CreateRole(actorContext(r, h.ipConfig), models.Role{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Permissions: req.Permissions,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusCreated, role, "Role created")
}

// UpdateRole changes a role; users holding it see the change immediately
//
// @Router /roles/{id} [put]
func (h *RoleHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	role, err := h.service.UpdateRole(actorContext(r, h.ipConfig), chi.URLParam(r, "id"), repositories.RolePatch{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Permissions: req.Permissions,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, role, "Role updated")
}

// @Router /roles/{id} [delete]
func (h *RoleHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRole(actorContext(r, h.ipConfig), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, nil, "Role deleted")
}

// @Router /roles/{id}/permissions [put]
func (h *RoleHandler) SetPermissions(w http.ResponseWriter, r *http.Request) {
	var req SetPermissionsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	role, err := h.service.SetPermissions(actorContext(r, h.ipConfig), chi.URLParam(r, "id"), req.Permissions)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, role, "Permissions updated")
}
