package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/query"
	"github.com/BradenHooton/gridboard/internal/repositories"
	"github.com/BradenHooton/gridboard/pkg/auth"
	pkglogger "github.com/BradenHooton/gridboard/pkg/logger"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	List(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id string, patch repositories.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id string) error
	SetPassword(ctx context.Context, id, passwordHash string) error
	SetRole(ctx context.Context, id, roleID string) (*models.User, error)
	SetPermissions(ctx context.Context, id string, permissions []string) (*models.User, error)
}

// CreateUserInput carries the fields accepted when creating a user
type CreateUserInput struct {
	Email       string
	Username    string
	FullName    string
	Avatar      string
	RoleID      string
	Permissions []string
	IsActive    *bool
	Password    string
}

// UserService handles user business logic
type UserService struct {
	repo   UserRepository
	schema *query.Schema[*models.User]
	audit  *AuditService
	logger *slog.Logger
}

// NewUserService creates a new UserService. pageSize sets the default
// page size of ListUsers.
func NewUserService(repo UserRepository, audit *AuditService, logger *slog.Logger, pageSize int) *UserService {
	return &UserService{
		repo:   repo,
		schema: query.UserSchema(pageSize),
		audit:  audit,
		logger: logger,
	}
}

// Schema exposes the query schema so callers can parse specs
func (s *UserService) Schema() *query.Schema[*models.User] {
	return s.schema
}

// ListUsers runs spec against the full user collection
func (s *UserService) ListUsers(ctx context.Context, spec query.Spec) (query.Result[*models.User], error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return query.Result[*models.User]{}, classify(s.logger, "failed to list users", err)
	}
	return query.Run(s.schema, users, spec), nil
}

// SelectUsers returns every user matching spec, unpaginated
func (s *UserService) SelectUsers(ctx context.Context, spec query.Spec) ([]*models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, classify(s.logger, "failed to list users", err)
	}
	return query.Select(s.schema, users, spec), nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, classify(s.logger, "failed to get user", err, slog.String("user_id", id))
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	user := &models.User{
		Email:       in.Email,
		Username:    in.Username,
		FullName:    in.FullName,
		Avatar:      in.Avatar,
		Role:        models.Role{ID: in.RoleID},
		Permissions: in.Permissions,
		IsActive:    true,
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if len(in.Permissions) > 0 {
		if invalid := models.InvalidPermissions(in.Permissions); len(invalid) > 0 {
			err := models.Errorf(models.ErrBadRequest, "Invalid permissions")
			s.audit.Record(ctx, "user.create", "user", "", err, nil)
			return nil, err
		}
	}

	if in.Password != "" {
		hash, err := s.hashPassword(in.Password)
		if err != nil {
			s.audit.Record(ctx, "user.create", "user", "", err, nil)
			return nil, err
		}
		user.PasswordHash = hash
	}

	created, err := s.repo.Create(ctx, user)
	s.audit.Record(ctx, "user.create", "user", idOf(created), err, nil)
	if err != nil {
		return nil, classify(s.logger, "failed to create user", err, emailAttr(user.Email))
	}

	s.logger.Info("user created", slog.String("user_id", created.ID), emailAttr(created.Email))
	return created, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, patch repositories.UserPatch) (*models.User, error) {
	updated, err := s.repo.Update(ctx, id, patch)
	s.audit.Record(ctx, "user.update", "user", id, err, nil)
	if err != nil {
		return nil, classify(s.logger, "failed to update user", err, slog.String("user_id", id))
	}

	attrs := []any{slog.String("user_id", id)}
	if patch.Email != nil {
		attrs = append(attrs, emailAttr(*patch.Email))
	}
	s.logger.Info("user updated", attrs...)
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	s.audit.Record(ctx, "user.delete", "user", id, err, nil)
	if err != nil {
		return classify(s.logger, "failed to delete user", err, slog.String("user_id", id))
	}

	s.logger.Info("user deleted", slog.String("user_id", id))
	return nil
}

// SetPassword validates and hashes password before storing it
func (s *UserService) SetPassword(ctx context.Context, id, password string) error {
	hash, err := s.hashPassword(password)
	if err == nil {
		err = s.repo.SetPassword(ctx, id, hash)
	}
	s.audit.Record(ctx, "user.set_password", "user", id, err, nil)
	if err != nil {
		return classify(s.logger, "failed to set password", err, slog.String("user_id", id))
	}

	s.logger.Info("user password set", slog.String("user_id", id))
	return nil
}

func (s *UserService) SetRole(ctx context.Context, id, roleID string) (*models.User, error) {
	updated, err := s.repo.SetRole(ctx, id, roleID)
	s.audit.Record(ctx, "user.set_role", "user", id, err, map[string]string{"role_id": roleID})
	if err != nil {
		return nil, classify(s.logger, "failed to set role", err, slog.String("user_id", id), slog.String("role_id", roleID))
	}

	s.logger.Info("user role set", slog.String("user_id", id), slog.String("role_id", roleID))
	return updated, nil
}

func (s *UserService) SetPermissions(ctx context.Context, id string, permissions []string) (*models.User, error) {
	updated, err := s.repo.SetPermissions(ctx, id, permissions)
	s.audit.Record(ctx, "user.set_permissions", "user", id, err, nil)
	if err != nil {
		return nil, classify(s.logger, "failed to set permissions", err, slog.String("user_id", id))
	}

	s.logger.Info("user permissions set", slog.String("user_id", id), slog.Int("count", len(permissions)))
	return updated, nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	if err := auth.ValidatePassword(password); err != nil {
		var pve *auth.PasswordValidationError
		if errors.As(err, &pve) {
			return "", models.Errorf(models.ErrBadRequest, pve.Error())
		}
		return "", models.Errorf(models.ErrBadRequest, "Invalid password")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return "", models.ErrInternalServer
	}
	return hash, nil
}

func idOf(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}

// emailAttr logs an address with the local part and domain masked
func emailAttr(email string) slog.Attr {
	return slog.String("email", pkglogger.SanitizedEmail(email))
}
