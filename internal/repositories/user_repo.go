package repositories

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/BradenHooton/gridboard/internal/models"
)

// protectedUsername is the account that can never be deleted
const protectedUsername = "admin"

const defaultRoleName = "User"

// UserPatch carries the fields of a partial user update
type UserPatch struct {
	Email    *string
	Username *string
	FullName *string
	Avatar   *string
	IsActive *bool
}

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// List returns copies of every user in insertion order
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	if err := r.store.latency.Wait(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]*models.User, len(r.store.users))
	for i, u := range r.store.users {
		users[i] = u.Clone()
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := r.store.latency.Wait(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, _ := r.store.findUser(id)
	if u == nil {
		return nil, models.Errorf(models.ErrNotFound, "User not found")
	}
	return u.Clone(), nil
}

// Create inserts a user. Username and full name are required and the
// username must be unique. Without a role the user gets the User role.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.store.latency.Wait(ctx); err != nil {
		return nil, err
	}

	if strings.TrimSpace(user.Username) == "" || strings.TrimSpace(user.FullName) == "" {
		return nil, models.Errorf(models.ErrBadRequest, "Username and full name are required")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.usernameTaken(user.Username, "") {
		return nil, models.Errorf(models.ErrConflict, "Username already exists")
	}

	created := user.Clone()
	if created.Role.ID == "" {
		if role, ok := r.store.findRoleByName(defaultRoleName); ok {
			created.Role = role.Clone()
		}
	} else {
		role, ok := r.store.findRole(created.Role.ID)
		if !ok {
			return nil, models.Errorf(models.ErrNotFound, "Role not found")
		}
		created.Role = role.Clone()
	}
	if len(created.Permissions) == 0 {
		created.Permissions = []string{models.PermissionUserRead}
	}

	now := r.store.now()
	created.ID = strconv.Itoa(r.store.nextUserID)
	r.store.nextUserID++
	created.CreatedAt = now
	created.UpdatedAt = now
	created.LastLoginAt = nil

	r.store.users = append(r.store.users, created)
	return created.Clone(), nil
}

func (r *UserRepository) Update(ctx context.Context, id string, patch UserPatch) (*models.User, error) {
	if err := r.store.latency.Wait(ctx); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, _ := r.store.findUser(id)
	if u == nil {
		return nil, models.Errorf(models.ErrNotFound, "User not found")
	}

	if err := r.validatePatch(u, patch); err != nil {
		return nil, err
	}

	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.FullName != nil {
		u.FullName = *patch.FullName
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}
	u.UpdatedAt = r.store.now()

	return u.Clone(), nil
}

// validatePatch checks every field of patch against u before any of them is
// applied. The caller holds the store lock.
func (r *UserRepository) validatePatch(u *models.User, patch UserPatch) error {
	if patch.Username != nil && *patch.Username != u.Username {
		if strings.TrimSpace(*patch.Username) == "" {
			return models.Errorf(models.ErrBadRequest, "Username is required")
		}
		if r.store.usernameTaken(*patch.Username, u.ID) {
			return models.Errorf(models.ErrConflict, "Username already exists")
		}
	}
	if patch.FullName != nil && strings.TrimSpace(*patch.FullName) == "" {
		return models.Errorf(models.ErrBadRequest, "Full name is required")
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.latency.Wait(ctx); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, idx := r.store.findUser(id)
	if u == nil {
		return models.Errorf(models.ErrNotFound, "User not found")
	}
	if u.Username == protectedUsername {
		return models.Errorf(models.ErrForbidden, "Cannot delete admin user")
	}

	r.store.users = slices.Delete(r.store.users, idx, idx+1)
	return nil
}

// SetPassword stores an already hashed password
func (r *UserRepository) SetPassword(ctx context.Context, id, passwordHash string) error {
	if err := r.store.latency.Wait(ctx); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, _ := r.store.findUser(id)
	if u == nil {
		return models.Errorf(models.ErrNotFound, "User not found")
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = r.store.now()
	return nil
}

// SetRole assigns a role and replaces the user's permissions with the
// role's.
func (r *UserRepository) SetRole(ctx context.Context, id, roleID string) (*models.User, error) {
	if err := r.store.latency.Wait(ctx); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, _ := r.store.findUser(id)
	if u == nil {
		return nil, models.Errorf(models.ErrNotFound, "User not found")
	}
	role, ok := r.store.findRole(roleID)
	if !ok {
		return nil, models.Errorf(models.ErrNotFound, "Role not found")
	}

	u.Role = role.Clone()
	u.Permissions = slices.Clone(role.Permissions)
	u.UpdatedAt = r.store.now()
	return u.Clone(), nil
}

func (r *UserRepository) SetPermissions(ctx context.Context, id string, permissions []string) (*models.User, error) {
	if err := r.store.latency.Wait(ctx); err != nil {
		return nil, err
	}

	if err := validatePermissions(permissions); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, _ := r.store.findUser(id)
	if u == nil {
		return nil, models.Errorf(models.ErrNotFound, "User not found")
	}
	u.Permissions = slices.Clone(permissions)
	u.UpdatedAt = r.store.now()
	return u.Clone(), nil
}

func (s *Store) findUser(id string) (*models.User, int) {
	for i, u := range s.users {
		if u.ID == id {
			return u, i
		}
	}
	return nil, -1
}

func (s *Store) usernameTaken(username, exceptID string) bool {
	return slices.ContainsFunc(s.users, func(u *models.User) bool {
		return u.Username == username && u.ID != exceptID
	})
}
