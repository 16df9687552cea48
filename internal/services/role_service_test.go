package services

import (
	"context"
	"testing"

	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleService_CreateRole(t *testing.T) {
	audit, rec := NewTestAudit()
	svc := NewRoleService(&MockRoleRepository{
		CreateFunc: func(ctx context.Context, role models.Role) (*models.Role, error) {
			role.ID = "13"
			return &role, nil
		},
	}, audit, NewTestLogger())

	role, err := svc.CreateRole(context.Background(), models.Role{Name: "Auditor"})

	require.NoError(t, err)
	assert.Equal(t, "13", role.ID)
	assert.Equal(t, "role.create", rec.Last().Action)
	assert.Equal(t, "Auditor", rec.Last().Metadata["name"])
}

func TestRoleService_DeleteRole_InUse(t *testing.T) {
	audit, rec := NewTestAudit()
	svc := NewRoleService(&MockRoleRepository{
		DeleteFunc: func(ctx context.Context, id string) error {
			return models.Errorf(models.ErrConflict, "Cannot delete role. 4 user(s) are assigned to this role.")
		},
	}, audit, NewTestLogger())

	err := svc.DeleteRole(context.Background(), "2")

	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Contains(t, rec.Last().Reason, "4 user(s)")
}

func TestRoleService_SetPermissions(t *testing.T) {
	perms := []string{models.PermissionUserRead}
	svc := NewRoleService(&MockRoleRepository{
		SetPermissionsFunc: func(ctx context.Context, id string, permissions []string) (*models.Role, error) {
			return &models.Role{ID: id, Permissions: permissions}, nil
		},
	}, nil, NewTestLogger())

	role, err := svc.SetPermissions(context.Background(), "2", perms)

	require.NoError(t, err)
	assert.Equal(t, perms, role.Permissions)
}

func TestRoleService_UpdateRole_NotFound(t *testing.T) {
	svc := NewRoleService(&MockRoleRepository{
		UpdateFunc: func(ctx context.Context, id string, patch repositories.RolePatch) (*models.Role, error) {
			return nil, models.Errorf(models.ErrNotFound, "Role not found")
		},
	}, nil, NewTestLogger())

	_, err := svc.UpdateRole(context.Background(), "99", repositories.RolePatch{})

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPermissions_Catalogue(t *testing.T) {
	perms := Permissions()

	require.Len(t, perms, len(models.AllPermissions()))
	byKey := make(map[string]models.PermissionInfo)
	for _, p := range perms {
		byKey[p.Key] = p
		assert.NotEmpty(t, p.Description)
	}
	assert.Equal(t, "User Set Role", byKey[models.PermissionUserSetRole].Name)
	assert.Equal(t, "Permission Read", byKey[models.PermissionRead].Name)
}
