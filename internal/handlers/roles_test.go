package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BradenHooton/gridboard/internal/handlers"
	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/repositories"
)

func newRoleHandler(svc *handlers.MockRoleService) *handlers.RoleHandler {
	return handlers.NewRoleHandler(svc, handlers.NewTestLogger(), nil)
}

func TestListRoles_EmptyIsArray(t *testing.T) {
	w := httptest.NewRecorder()
	newRoleHandler(&handlers.MockRoleService{}).ListRoles(w, httptest.NewRequest(http.MethodGet, "/roles", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestCreateRole_ValidatesColor(t *testing.T) {
	w := httptest.NewRecorder()
	body := `{"name":"Auditor","color":"blue"}`
	newRoleHandler(&handlers.MockRoleService{}).CreateRole(w, handlers.NewRawRequest(http.MethodPost, "/roles", body))

	resp := handlers.AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
	assert.Contains(t, resp.Error, "color")
}

func TestCreateRole_Success(t *testing.T) {
	svc := &handlers.MockRoleService{
		CreateRoleFunc: func(ctx context.Context, role models.Role) (*models.Role, error) {
			role.ID = "13"
			return &role, nil
		},
	}

	w := httptest.NewRecorder()
	body := `{"name":"Auditor","color":"#336699","permissions":["user_read"]}`
	newRoleHandler(svc).CreateRole(w, handlers.NewRawRequest(http.MethodPost, "/roles", body))

	var role models.Role
	handlers.DecodeData(t, w, &role)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "13", role.ID)
	assert.Equal(t, []string{"user_read"}, role.Permissions)
}

func TestUpdateRole_PermissionsPointer(t *testing.T) {
	var got repositories.RolePatch
	svc := &handlers.MockRoleService{
		UpdateRoleFunc: func(ctx context.Context, id string, patch repositories.RolePatch) (*models.Role, error) {
			got = patch
			return &models.Role{ID: id, Name: "Editor"}, nil
		},
	}

	req := handlers.WithChiID(handlers.NewRawRequest(http.MethodPut, "/roles/2", `{"permissions":[]}`), "2")
	w := httptest.NewRecorder()
	newRoleHandler(svc).UpdateRole(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.Permissions)
	assert.Empty(t, *got.Permissions)
	assert.Nil(t, got.Name)
}

func TestDeleteRole_InUse(t *testing.T) {
	svc := &handlers.MockRoleService{
		DeleteRoleFunc: func(ctx context.Context, id string) error {
			return models.Errorf(models.ErrConflict, "Role is assigned to users")
		},
	}

	req := handlers.WithChiID(httptest.NewRequest(http.MethodDelete, "/roles/4", nil), "4")
	w := httptest.NewRecorder()
	newRoleHandler(svc).DeleteRole(w, req)

	resp := handlers.AssertErrorResponse(t, w, http.StatusConflict, "conflict")
	assert.Equal(t, "Role is assigned to users", resp.Error)
}
