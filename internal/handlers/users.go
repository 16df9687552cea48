package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/query"
	"github.com/BradenHooton/gridboard/internal/repositories"
	"github.com/BradenHooton/gridboard/internal/services"
	pkghttp "github.com/BradenHooton/gridboard/pkg/http"
)

// UserService defines the interface for user business logic
type UserService interface {
	Schema() *query.Schema[*models.User]
	ListUsers(ctx context.Context, spec query.Spec) (query.Result[*models.User], error)
	SelectUsers(ctx context.Context, spec query.Spec) ([]*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, in services.CreateUserInput) (*models.User, error)
	UpdateUser(ctx context.Context, id string, patch repositories.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	SetPassword(ctx context.Context, id, password string) error
	SetRole(ctx context.Context, id, roleID string) (*models.User, error)
	SetPermissions(ctx context.Context, id string, permissions []string) (*models.User, error)
}

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	service  UserService
	logger   *slog.Logger
	ipConfig *pkghttp.IPConfig
}

func NewUserHandler(service UserService, logger *slog.Logger, ipConfig *pkghttp.IPConfig) *UserHandler {
	return &UserHandler{service: service, logger: logger, ipConfig: ipConfig}
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Email       string   `json:"email" validate:"omitempty,email"`
	Username    string   `json:"username" validate:"required,max=64"`
	FullName    string   `json:"fullName" validate:"required,max=128"`
	Avatar      string   `json:"avatar" validate:"omitempty,url"`
	RoleID      string   `json:"roleId"`
	Permissions []string `json:"permissions"`
	IsActive    *bool    `json:"isActive"`
	Password    string   `json:"password" validate:"omitempty,max=128"`
}

// UpdateUserRequest carries the fields to change; absent fields are kept
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Username *string `json:"username" validate:"omitempty,min=1,max=64"`
	FullName *string `json:"fullName" validate:"omitempty,min=1,max=128"`
	Avatar   *string `json:"avatar"`
	IsActive *bool   `json:"isActive"`
}

type SetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

type SetRoleRequest struct {
	RoleID string `json:"roleId" validate:"required"`
}

type SetPermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required,dive,required"`
}

// RegisterRoutes registers all user routes with the chi router. Mutations
// are wrapped with mutate.
func (h *UserHandler) RegisterRoutes(router chi.Router, mutate func(http.Handler) http.Handler) {
	router.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Get("/{id}", h.GetUser)

		r.Group(func(r chi.Router) {
			r.Use(mutate)
			r.Post("/", h.CreateUser)
			r.Put("/{id}", h.UpdateUser)
			r.Delete("/{id}", h.DeleteUser)
			r.Put("/{id}/password", h.SetPassword)
			r.Put("/{id}/role", h.SetRole)
			r.Put("/{id}/permissions", h.SetPermissions)
		})
	})
}

// ListUsers runs a filtered, sorted, paginated query
//
// @Router /users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	spec := h.service.Schema().Parse(r.URL.Query())

	result, err := h.service.ListUsers(r.Context(), spec)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeList(w, result)
}

// GetUser retrieves a user by ID
//
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, user, "")
}

// CreateUser creates a new user
//
// @Router /users [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.CreateUser(actorContext(r, h.ipConfig), services.CreateUserInput{
		Email:       req.Email,
		Username:    req.Username,
		FullName:    req.FullName,
		Avatar:      req.Avatar,
		RoleID:      req.RoleID,
		Permissions: req.Permissions,
		IsActive:    req.IsActive,
		Password:    req.Password,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusCreated, user, "User created")
}

// UpdateUser applies a partial update
//
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.UpdateUser(actorContext(r, h.ipConfig), chi.URLParam(r, "id"), repositories.UserPatch{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
		Avatar:   req.Avatar,
		IsActive: req.IsActive,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, user, "User updated")
}

// DeleteUser removes a user
//
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteUser(actorContext(r, h.ipConfig), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, nil, "User deleted")
}

// SetPassword replaces a user's password
//
// @Router /users/{id}/password [put]
func (h *UserHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	var req SetPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.SetPassword(actorContext(r, h.ipConfig), chi.URLParam(r, "id"), req.Password); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, nil, "Password updated")
}

// SetRole assigns a role and its permissions
//
// @Router /users/{id}/role [put]
func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	var req SetRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.SetRole(actorContext(r, h.ipConfig), chi.URLParam(r, "id"), req.RoleID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, user, "Role updated")
}

// SetPermissions replaces a user's permission list
//
// @Router /users/{id}/permissions [put]
func (h *UserHandler) SetPermissions(w http.ResponseWriter, r *http.Request) {
	var req SetPermissionsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.SetPermissions(actorContext(r, h.ipConfig), chi.URLParam(r, "id"), req.Permissions)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, user, "Permissions updated")
}
