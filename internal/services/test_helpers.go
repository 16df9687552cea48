package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/repositories"
	"github.com/BradenHooton/gridboard/pkg/logger"
)

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	ListFunc           func(ctx context.Context) ([]*models.User, error)
	GetByIDFunc        func(ctx context.Context, id string) (*models.User, error)
	CreateFunc         func(ctx context.Context, user *models.User) (*models.User, error)
	UpdateFunc         func(ctx context.Context, id string, patch repositories.UserPatch) (*models.User, error)
	DeleteFunc         func(ctx context.Context, id string) error
	SetPasswordFunc    func(ctx context.Context, id, passwordHash string) error
	SetRoleFunc        func(ctx context.Context, id, roleID string) (*models.User, error)
	SetPermissionsFunc func(ctx context.Context, id string, permissions []string) (*models.User, error)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.User{}, nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) Update(ctx context.Context, id string, patch repositories.UserPatch) (*models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) SetPassword(ctx context.Context, id, passwordHash string) error {
	if m.SetPasswordFunc != nil {
		return m.SetPasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

func (m *MockUserRepository) SetRole(ctx context.Context, id, roleID string) (*models.User, error) {
	if m.SetRoleFunc != nil {
		return m.SetRoleFunc(ctx, id, roleID)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) SetPermissions(ctx context.Context, id string, permissions []string) (*models.User, error) {
	if m.SetPermissionsFunc != nil {
		return m.SetPermissionsFunc(ctx, id, permissions)
	}
	return nil, models.ErrInternalServer
}

// MockRoleRepository implements RoleRepository for testing
type MockRoleRepository struct {
	ListFunc           func(ctx context.Context) ([]models.Role, error)
	GetByIDFunc        func(ctx context.Context, id string) (*models.Role, error)
	CreateFunc         func(ctx context.Context, role models.Role) (*models.Role, error)
	UpdateFunc         func(ctx context.Context, id string, patch repositories.RolePatch) (*models.Role, error)
	DeleteFunc         func(ctx context.Context, id string) error
	SetPermissionsFunc func(ctx context.Context, id string, permissions []string) (*models.Role, error)
}

func (m *MockRoleRepository) List(ctx context.Context) ([]models.Role, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []models.Role{}, nil
}

func (m *MockRoleRepository) GetByID(ctx context.Context, id string) (*models.Role, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockRoleRepository) Create(ctx context.Context, role models.Role) (*models.Role, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, role)
	}
	return nil, models.ErrInternalServer
}

func (m *MockRoleRepository) Update(ctx context.Context, id string, patch repositories.RolePatch) (*models.Role, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return nil, models.ErrInternalServer
}

func (m *MockRoleRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockRoleRepository) SetPermissions(ctx context.Context, id string, permissions []string) (*models.Role, error) {
	if m.SetPermissionsFunc != nil {
		return m.SetPermissionsFunc(ctx, id, permissions)
	}
	return nil, models.ErrInternalServer
}

// MockProductRepository implements ProductRepository for testing
type MockProductRepository struct {
	ListFunc        func(ctx context.Context) ([]*models.Product, error)
	CategoriesFunc  func(ctx context.Context) ([]models.Category, error)
	GetByIDFunc     func(ctx context.Context, id string) (*models.Product, error)
	CreateFunc      func(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateFunc      func(ctx context.Context, id string, patch repositories.ProductPatch) (*models.Product, error)
	DeleteFunc      func(ctx context.Context, id string) error
	AdjustStockFunc func(ctx context.Context, id string, delta int, modifiedBy string) (*models.Product, error)
}

func (m *MockProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.Product{}, nil
}

func (m *MockProductRepository) Categories(ctx context.Context) ([]models.Category, error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx)
	}
	return []models.Category{}, nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, product)
	}
	return nil, models.ErrInternalServer
}

func (m *MockProductRepository) Update(ctx context.Context, id string, patch repositories.ProductPatch) (*models.Product, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return nil, models.ErrInternalServer
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, id string, delta int, modifiedBy string) (*models.Product, error) {
	if m.AdjustStockFunc != nil {
		return m.AdjustStockFunc(ctx, id, delta, modifiedBy)
	}
	return nil, models.ErrInternalServer
}

// RecordingMutationLogger keeps every audit event in memory
type RecordingMutationLogger struct {
	mu     sync.Mutex
	Events []logger.MutationEvent
}

func (r *RecordingMutationLogger) LogMutation(_ context.Context, event logger.MutationEvent) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, event)
	return "test-event"
}

func (r *RecordingMutationLogger) Last() logger.MutationEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Events) == 0 {
		return logger.MutationEvent{}
	}
	return r.Events[len(r.Events)-1]
}

// NewTestLogger discards output
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestAudit returns an AuditService backed by a recorder
func NewTestAudit() (*AuditService, *RecordingMutationLogger) {
	rec := &RecordingMutationLogger{}
	return NewAuditService(rec, NewTestLogger()), rec
}

// NewTestUser creates a test user with the given role name
func NewTestUser(id, username, fullName, role string) *models.User {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return &models.User{
		ID:          id,
		Email:       username + "@example.com",
		Username:    username,
		FullName:    fullName,
		Role:        models.Role{ID: role, Name: role},
		Permissions: []string{models.PermissionUserRead},
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewTestProduct creates a test product in the given category
func NewTestProduct(id, name, category string, price float64, stock int) *models.Product {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return &models.Product{
		ID:        id,
		Name:      name,
		SKU:       "SKU-" + id,
		Price:     price,
		Category:  models.Category{ID: category, Name: category},
		Stock:     stock,
		MinStock:  10,
		Status:    models.ProductStatusActive,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
