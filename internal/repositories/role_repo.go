package repositories

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/BradenHooton/gridboard/internal/models"
)

// protectedRoleName is the role that can never be deleted
const protectedRoleName = "Admin"

// RolePatch carries the fields of a partial role update
type RolePatch struct {
	Name        *string
	Description *string
	Color       *string
	Permissions *[]string
}

type RoleRepository struct {
	store *Store
}

func NewRoleRepository(store *Store) *RoleRepository {
	return &RoleRepository{store: store}
}

func (r *RoleRepository) List(ctx context.Context) ([]models.Role, error) {
	if err := r.store.latency.Wait(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	roles := make([]models.Role, len(r.store.roles))
	for i, role := range r.store.roles {
		roles[i] = role.Clone()
	}
	return roles, nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id string) (*models.Role, error) {
	if err := r.store.latency.Wait(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	role, ok := r.store.findRole(id)
	if !ok {
		return nil, models.Errorf(models.ErrNotFound, "Role not found")
	}
	c := role.Clone()
	return &c, nil
}

// UserCount returns how many users reference the role
func (r *RoleRepository) UserCount(ctx context.Context, id string) (int, error) {
	if err := r.store.latency.Wait(ctx); err != nil {
		return 0, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.usersWithRole(id), nil
}

func (r *RoleRepository) Create(ctx context.Context, role models.Role) (*models.Role, error) {
	if err := r.store.latency.Wait(ctx); err != nil {
		return nil, err
	}

	if strings.TrimSpace(role.Name) == "" {
		return nil, models.Errorf(models.ErrBadRequest, "Role name is required")
	}
	if err := validatePermissions(role.Permissions); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.roleNameTaken(role.Name, "") {
		return nil, models.Errorf(models.ErrConflict, "Role name already exists")
	}

	now := r.store.now()
	created := role.Clone()
	created.ID = strconv.Itoa(r.store.nextRoleID)
	r.store.nextRoleID++
	if created.Permissions == nil {
		created.Permissions = []string{}
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.store.roles = append(r.store.roles, created)
	return &created, nil
}

// Update modifies a role and propagates the result to every user holding
// it.
func (r *RoleRepository) Update(ctx context.Context, id string, patch RolePatch) (*models.Role, error) {
	if err := r.store.latency.Wait(ctx); err != nil {
		return nil, err
	}

	if patch.Permissions != nil {
		if err := validatePermissions(*patch.Permissions); err != nil {
			return nil, err
		}
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := r.store.roleIndex(id)
	if idx < 0 {
		return nil, models.Errorf(models.ErrNotFound, "Role not found")
	}
	role := r.store.roles[idx]

	if patch.Name != nil && *patch.Name != role.Name {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, models.Errorf(models.ErrBadRequest, "Role name is required")
		}
		if r.store.roleNameTaken(*patch.Name, id) {
			return nil, models.Errorf(models.ErrConflict, "Role name already exists")
		}
		role.Name = *patch.Name
	}
	if patch.Description != nil {
		role.Description = *patch.Description
	}
	if patch.Color != nil {
		role.Color = *patch.Color
	}
	if patch.Permissions != nil {
		role.Permissions = slices.Clone(*patch.Permissions)
	}
	role.UpdatedAt = r.store.now()
	r.store.roles[idx] = role

	r.store.cascadeRole(role, patch.Permissions != nil)

	c := role.Clone()
	return &c, nil
}

// Delete refuses the Admin role and roles still assigned to users
func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.latency.Wait(ctx); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := r.store.roleIndex(id)
	if idx < 0 {
		return models.Errorf(models.ErrNotFound, "Role not found")
	}
	if r.store.roles[idx].Name == protectedRoleName {
		return models.Errorf(models.ErrForbidden, "Cannot delete Admin role")
	}
	if n := r.store.usersWithRole(id); n > 0 {
		return models.Errorf(models.ErrConflict, fmt.Sprintf("Cannot delete role. %d user(s) are assigned to this role.", n))
	}

	r.store.roles = slices.Delete(r.store.roles, idx, idx+1)
	return nil
}

// SetPermissions replaces the role's permissions and the permissions of
// every user holding the role.
func (r *RoleRepository) SetPermissions(ctx context.Context, id string, permissions []string) (*models.Role, error) {
	if err := r.store.latency.Wait(ctx); err != nil {
		return nil, err
	}

	if err := validatePermissions(permissions); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := r.store.roleIndex(id)
	if idx < 0 {
		return nil, models.Errorf(models.ErrNotFound, "Role not found")
	}

	role := r.store.roles[idx]
	role.Permissions = slices.Clone(permissions)
	role.UpdatedAt = r.store.now()
	r.store.roles[idx] = role

	r.store.cascadeRole(role, true)

	c := role.Clone()
	return &c, nil
}

// cascadeRole copies role onto every user referencing it and bumps their
// UpdatedAt. withPermissions also replaces the users' own permission list.
func (s *Store) cascadeRole(role models.Role, withPermissions bool) {
	now := s.now()
	for _, u := range s.users {
		if u.Role.ID != role.ID {
			continue
		}
		u.Role = role.Clone()
		if withPermissions {
			u.Permissions = slices.Clone(role.Permissions)
		}
		u.UpdatedAt = now
	}
}

func (s *Store) roleIndex(id string) int {
	return slices.IndexFunc(s.roles, func(r models.Role) bool { return r.ID == id })
}

func (s *Store) findRole(id string) (models.Role, bool) {
	if idx := s.roleIndex(id); idx >= 0 {
		return s.roles[idx], true
	}
	return models.Role{}, false
}

func (s *Store) findRoleByName(name string) (models.Role, bool) {
	for _, r := range s.roles {
		if r.Name == name {
			return r, true
		}
	}
	return models.Role{}, false
}

func (s *Store) roleNameTaken(name, exceptID string) bool {
	return slices.ContainsFunc(s.roles, func(r models.Role) bool {
		return r.Name == name && r.ID != exceptID
	})
}

func (s *Store) usersWithRole(id string) int {
	n := 0
	for _, u := range s.users {
		if u.Role.ID == id {
			n++
		}
	}
	return n
}

func validatePermissions(perms []string) error {
	if invalid := models.InvalidPermissions(perms); len(invalid) > 0 {
		return models.Errorf(models.ErrBadRequest, fmt.Sprintf("Invalid permissions: %s", strings.Join(invalid, ", ")))
	}
	return nil
}
