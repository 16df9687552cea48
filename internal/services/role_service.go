package services

import (
	"context"
	"log/slog"

	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/repositories"
)

// RoleRepository defines the interface for role data access
type RoleRepository interface {
	List(ctx context.Context) ([]models.Role, error)
	GetByID(ctx context.Context, id string) (*models.Role, error)
	Create(ctx context.Context, role models.Role) (*models.Role, error)
	Update(ctx context.Context, id string, patch repositories.RolePatch) (*models.Role, error)
	Delete(ctx context.Context, id string) error
	SetPermissions(ctx context.Context, id string, permissions []string) (*models.Role, error)
}

// RoleService handles role business logic. Role changes cascade to the
// users that hold the role inside the repository.
type RoleService struct {
	repo   RoleRepository
	audit  *AuditService
	logger *slog.Logger
}

func NewRoleService(repo RoleRepository, audit *AuditService, logger *slog.Logger) *RoleService {
	return &RoleService{
		repo:   repo,
		audit:  audit,
		logger: logger,
	}
}

func (s *RoleService) ListRoles(ctx context.Context) ([]models.Role, error) {
	roles, err := s.repo.List(ctx)
	if err != nil {
		return nil, classify(s.logger, "failed to list roles", err)
	}
	return roles, nil
}

func (s *RoleService) GetRole(ctx context.Context, id string) (*models.Role, error) {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, classify(s.logger, "failed to get role", err, slog.String("role_id", id))
	}
	return role, nil
}

func (s *RoleService) CreateRole(ctx context.Context, role models.Role) (*models.Role, error) {
	created, err := s.repo.Create(ctx, role)
	var id string
	if created != nil {
		id = created.ID
	}
	s.audit.Record(ctx, "role.create", "role", id, err, map[string]string{"name": role.Name})
	if err != nil {
		return nil, classify(s.logger, "failed to create role", err)
	}

	s.logger.Info("role created", slog.String("role_id", created.ID), slog.String("name", created.Name))
	return created, nil
}

func (s *RoleService) UpdateRole(ctx context.Context, id string, patch repositories.RolePatch) (*models.Role, error) {
	updated, err := s.repo.Update(ctx, id, patch)
	s.audit.Record(ctx, "role.update", "role", id, err, nil)
	if err != nil {
		return nil, classify(s.logger, "failed to update role", err, slog.String("role_id", id))
	}

	s.logger.Info("role updated", slog.String("role_id", id))
	return updated, nil
}

func (s *RoleService) DeleteRole(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	s.audit.Record(ctx, "role.delete", "role", id, err, nil)
	if err != nil {
		return classify(s.logger, "failed to delete role", err, slog.String("role_id", id))
	}

	s.logger.Info("role deleted", slog.String("role_id", id))
	return nil
}

func (s *RoleService) SetPermissions(ctx context.Context, id string, permissions []string) (*models.Role, error) {
	updated, err := s.repo.SetPermissions(ctx, id, permissions)
	s.audit.Record(ctx, "role.set_permissions", "role", id, err, nil)
	if err != nil {
		return nil, classify(s.logger, "failed to set role permissions", err, slog.String("role_id", id))
	}

	s.logger.Info("role permissions set", slog.String("role_id", id), slog.Int("count", len(permissions)))
	return updated, nil
}
