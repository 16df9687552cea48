package services

import (
	"context"
	"log/slog"

	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/query"
	"golang.org/x/sync/errgroup"
)

// DashboardUserRepository is the subset of UserRepository needed by DashboardService
type DashboardUserRepository interface {
	List(ctx context.Context) ([]*models.User, error)
}

// DashboardRoleRepository is the subset of RoleRepository needed by DashboardService
type DashboardRoleRepository interface {
	List(ctx context.Context) ([]models.Role, error)
}

// DashboardProductRepository is the subset of ProductRepository needed by DashboardService
type DashboardProductRepository interface {
	List(ctx context.Context) ([]*models.Product, error)
}

// DashboardStats contains aggregate figures for the dashboard landing page
type DashboardStats struct {
	Users       query.Stats          `json:"users"`
	Roles       int                  `json:"roles"`
	Products    query.ProductSummary `json:"products"`
	Permissions int                  `json:"permissions"`
}

// DashboardService aggregates data for the dashboard endpoint
type DashboardService struct {
	users    DashboardUserRepository
	roles    DashboardRoleRepository
	products DashboardProductRepository
	logger   *slog.Logger
}

func NewDashboardService(
	users DashboardUserRepository,
	roles DashboardRoleRepository,
	products DashboardProductRepository,
	logger *slog.Logger,
) *DashboardService {
	return &DashboardService{
		users:    users,
		roles:    roles,
		products: products,
		logger:   logger,
	}
}

// GetStats loads the three collections concurrently and summarizes them
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	var (
		users    []*models.User
		roles    []models.Role
		products []*models.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.users.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		roles, err = s.roles.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		products, err = s.products.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, classify(s.logger, "dashboard: failed to load collections", err)
	}

	userSchema := query.UserSchema(0)
	return &DashboardStats{
		Users:       query.ComputeStats(users, userSchema.IsActive, userSchema.Group),
		Roles:       len(roles),
		Products:    query.SummarizeProducts(products),
		Permissions: len(models.AllPermissions()),
	}, nil
}
