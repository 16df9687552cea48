package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/query"
	"github.com/BradenHooton/gridboard/internal/repositories"
	"github.com/BradenHooton/gridboard/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(repo UserRepository) (*UserService, *RecordingMutationLogger) {
	audit, rec := NewTestAudit()
	return NewUserService(repo, audit, NewTestLogger(), 10), rec
}

func TestUserService_GetUser_Success(t *testing.T) {
	user := NewTestUser("7", "ann", "Ann Lee", "User")
	svc, _ := newUserService(&MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
	})

	result, err := svc.GetUser(context.Background(), "7")

	assert.NoError(t, err)
	assert.Equal(t, "7", result.ID)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	svc, _ := newUserService(&MockUserRepository{})

	result, err := svc.GetUser(context.Background(), "missing")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserService_GetUser_UnexpectedError(t *testing.T) {
	svc, _ := newUserService(&MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return nil, errors.New("disk on fire")
		},
	})

	_, err := svc.GetUser(context.Background(), "7")

	assert.Equal(t, models.ErrInternalServer, err)
}

func TestUserService_ListUsers_RunsQuery(t *testing.T) {
	users := []*models.User{
		NewTestUser("1", "zoe", "Zoe Tran", "Admin"),
		NewTestUser("2", "anh", "Anh Nguyen", "User"),
		NewTestUser("3", "binh", "Binh Le", "User"),
	}
	users[2].IsActive = false

	svc, _ := newUserService(&MockUserRepository{
		ListFunc: func(ctx context.Context) ([]*models.User, error) {
			return users, nil
		},
	})

	spec := svc.Schema().Parse(map[string][]string{"roleFilter": {"user"}, "limit": {"1"}})
	result, err := svc.ListUsers(context.Background(), spec)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.TotalFiltered)
	assert.Equal(t, 2, result.TotalPages)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Anh Nguyen", result.Records[0].FullName)
	assert.Equal(t, 1, result.Stats.Active)
	assert.Equal(t, 1, result.Stats.Inactive)
}

func TestUserService_SelectUsers_Unpaginated(t *testing.T) {
	users := make([]*models.User, 0, 30)
	for i := range 30 {
		users = append(users, NewTestUser(string(rune('a'+i%26))+"x", "u", "Name", "User"))
	}
	svc, _ := newUserService(&MockUserRepository{
		ListFunc: func(ctx context.Context) ([]*models.User, error) { return users, nil },
	})

	all, err := svc.SelectUsers(context.Background(), query.NewSpec(svc.Schema().Defaults))

	require.NoError(t, err)
	assert.Len(t, all, 30)
}

func TestUserService_CreateUser_HashesPassword(t *testing.T) {
	var stored *models.User
	svc, rec := newUserService(&MockUserRepository{
		CreateFunc: func(ctx context.Context, user *models.User) (*models.User, error) {
			stored = user
			created := *user
			created.ID = "301"
			return &created, nil
		},
	})

	ctx := WithActor(context.Background(), Actor{ID: "1", IP: "127.0.0.1"})
	created, err := svc.CreateUser(ctx, CreateUserInput{
		Username: "new_user",
		FullName: "New User",
		Password: "Secure123",
	})

	require.NoError(t, err)
	assert.Equal(t, "301", created.ID)
	assert.True(t, created.IsActive)
	require.NotEmpty(t, stored.PasswordHash)
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "Secure123"))

	event := rec.Last()
	assert.Equal(t, "user.create", event.Action)
	assert.Equal(t, "301", event.ResourceID)
	assert.Equal(t, "1", event.ActorID)
	assert.True(t, event.Success)
}

func TestUserService_CreateUser_WeakPassword(t *testing.T) {
	called := false
	svc, rec := newUserService(&MockUserRepository{
		CreateFunc: func(ctx context.Context, user *models.User) (*models.User, error) {
			called = true
			return user, nil
		},
	})

	_, err := svc.CreateUser(context.Background(), CreateUserInput{Username: "x", FullName: "X", Password: "short"})

	assert.ErrorIs(t, err, models.ErrBadRequest)
	assert.False(t, called)
	assert.False(t, rec.Last().Success)
}

func TestUserService_CreateUser_InvalidPermissions(t *testing.T) {
	svc, _ := newUserService(&MockUserRepository{})

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Username:    "x",
		FullName:    "X",
		Permissions: []string{"launch_rockets"},
	})

	assert.ErrorIs(t, err, models.ErrBadRequest)
}

func TestUserService_CreateUser_Conflict(t *testing.T) {
	svc, rec := newUserService(&MockUserRepository{
		CreateFunc: func(ctx context.Context, user *models.User) (*models.User, error) {
			return nil, models.Errorf(models.ErrConflict, "Username already exists")
		},
	})

	_, err := svc.CreateUser(context.Background(), CreateUserInput{Username: "admin", FullName: "A"})

	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Equal(t, "Username already exists", models.Reason(err))
	assert.Equal(t, "Username already exists", rec.Last().Reason)
}

func TestUserService_DeleteUser_Forbidden(t *testing.T) {
	svc, rec := newUserService(&MockUserRepository{
		DeleteFunc: func(ctx context.Context, id string) error {
			return models.Errorf(models.ErrForbidden, "Cannot delete admin user")
		},
	})

	err := svc.DeleteUser(context.Background(), "1")

	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.Equal(t, "user.delete", rec.Last().Action)
	assert.False(t, rec.Last().Success)
}

func TestUserService_UpdateUser_PassesPatch(t *testing.T) {
	var got repositories.UserPatch
	svc, _ := newUserService(&MockUserRepository{
		UpdateFunc: func(ctx context.Context, id string, patch repositories.UserPatch) (*models.User, error) {
			got = patch
			return NewTestUser(id, "ann", *patch.FullName, "User"), nil
		},
	})

	name := "Ann Renamed"
	updated, err := svc.UpdateUser(context.Background(), "7", repositories.UserPatch{FullName: &name})

	require.NoError(t, err)
	assert.Equal(t, "Ann Renamed", updated.FullName)
	assert.Equal(t, &name, got.FullName)
}

func TestUserService_SetPassword(t *testing.T) {
	var hash string
	svc, _ := newUserService(&MockUserRepository{
		SetPasswordFunc: func(ctx context.Context, id, passwordHash string) error {
			hash = passwordHash
			return nil
		},
	})

	require.NoError(t, svc.SetPassword(context.Background(), "3", "NewPass99"))
	assert.NoError(t, auth.ComparePassword(hash, "NewPass99"))

	err := svc.SetPassword(context.Background(), "3", "nouppercase1")
	assert.ErrorIs(t, err, models.ErrBadRequest)
	assert.Contains(t, models.Reason(err), "uppercase")
}

func TestUserService_SetRole_AuditsRoleID(t *testing.T) {
	svc, rec := newUserService(&MockUserRepository{
		SetRoleFunc: func(ctx context.Context, id, roleID string) (*models.User, error) {
			return NewTestUser(id, "ann", "Ann", roleID), nil
		},
	})

	user, err := svc.SetRole(context.Background(), "7", "3")

	require.NoError(t, err)
	assert.Equal(t, "3", user.Role.ID)
	assert.Equal(t, "3", rec.Last().Metadata["role_id"])
}

func TestUserService_ListUsers_ContextCancelled(t *testing.T) {
	svc, _ := newUserService(&MockUserRepository{
		ListFunc: func(ctx context.Context) ([]*models.User, error) {
			return nil, ctx.Err()
		},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ListUsers(ctx, query.Spec{})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestUserService_LogsMaskedEmail(t *testing.T) {
	var buf bytes.Buffer
	audit, _ := NewTestAudit()
	repo := &MockUserRepository{
		CreateFunc: func(ctx context.Context, user *models.User) (*models.User, error) {
			created := user.Clone()
			created.ID = "31"
			return created, nil
		},
		UpdateFunc: func(ctx context.Context, id string, patch repositories.UserPatch) (*models.User, error) {
			return NewTestUser(id, "jane", "Jane Doe", "User"), nil
		},
	}
	svc := NewUserService(repo, audit, slog.New(slog.NewJSONHandler(&buf, nil)), 10)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{Email: "jane@example.com", Username: "jane", FullName: "Jane Doe"})
	require.NoError(t, err)
	newEmail := "doe@mail.example.org"
	_, err = svc.UpdateUser(ctx, "31", repositories.UserPatch{Email: &newEmail})
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, `"email":"j***@*******.com"`)
	assert.Contains(t, logs, `"email":"d**@****.*******.org"`)
	assert.NotContains(t, logs, "jane@example.com")
	assert.NotContains(t, logs, newEmail)
}
