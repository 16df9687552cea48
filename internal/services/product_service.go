package services

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/query"
	"github.com/BradenHooton/gridboard/internal/repositories"
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	List(ctx context.Context) ([]*models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, id string, patch repositories.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, delta int, modifiedBy string) (*models.Product, error)
}

// ProductPage is a query result plus inventory figures over the filtered set
type ProductPage struct {
	query.Result[*models.Product]
	Summary query.ProductSummary `json:"summary"`
}

type ProductService struct {
	repo   ProductRepository
	schema *query.Schema[*models.Product]
	audit  *AuditService
	logger *slog.Logger
}

func NewProductService(repo ProductRepository, audit *AuditService, logger *slog.Logger, pageSize int) *ProductService {
	return &ProductService{
		repo:   repo,
		schema: query.ProductSchema(pageSize),
		audit:  audit,
		logger: logger,
	}
}

func (s *ProductService) Schema() *query.Schema[*models.Product] {
	return s.schema
}

// ListProducts runs spec and summarizes the filtered products
func (s *ProductService) ListProducts(ctx context.Context, spec query.Spec) (ProductPage, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return ProductPage{}, classify(s.logger, "failed to list products", err)
	}
	return ProductPage{
		Result:  query.Run(s.schema, products, spec),
		Summary: query.SummarizeProducts(s.schema.Filter(products, spec)),
	}, nil
}

// SelectProducts returns every product matching spec, unpaginated
func (s *ProductService) SelectProducts(ctx context.Context, spec query.Spec) ([]*models.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, classify(s.logger, "failed to list products", err)
	}
	return query.Select(s.schema, products, spec), nil
}

func (s *ProductService) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, classify(s.logger, "failed to list categories", err)
	}
	return categories, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, classify(s.logger, "failed to get product", err, slog.String("product_id", id))
	}
	return product, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if actor, ok := ActorFromContext(ctx); ok && product.CreatedBy == "" {
		product.CreatedBy = actor.ID
	}

	created, err := s.repo.Create(ctx, product)
	var id string
	if created != nil {
		id = created.ID
	}
	s.audit.Record(ctx, "product.create", "product", id, err, map[string]string{"sku": product.SKU})
	if err != nil {
		return nil, classify(s.logger, "failed to create product", err)
	}

	s.logger.Info("product created", slog.String("product_id", created.ID), slog.String("sku", created.SKU))
	return created, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch repositories.ProductPatch) (*models.Product, error) {
	if actor, ok := ActorFromContext(ctx); ok && patch.ModifiedBy == "" {
		patch.ModifiedBy = actor.ID
	}

	updated, err := s.repo.Update(ctx, id, patch)
	s.audit.Record(ctx, "product.update", "product", id, err, nil)
	if err != nil {
		return nil, classify(s.logger, "failed to update product", err, slog.String("product_id", id))
	}

	s.logger.Info("product updated", slog.String("product_id", id))
	return updated, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	s.audit.Record(ctx, "product.delete", "product", id, err, nil)
	if err != nil {
		return classify(s.logger, "failed to delete product", err, slog.String("product_id", id))
	}

	s.logger.Info("product deleted", slog.String("product_id", id))
	return nil
}

// AdjustStock applies a signed stock delta
func (s *ProductService) AdjustStock(ctx context.Context, id string, delta int) (*models.Product, error) {
	var actorID string
	if actor, ok := ActorFromContext(ctx); ok {
		actorID = actor.ID
	}

	updated, err := s.repo.AdjustStock(ctx, id, delta, actorID)
	s.audit.Record(ctx, "product.adjust_stock", "product", id, err, map[string]string{"delta": strconv.Itoa(delta)})
	if err != nil {
		return nil, classify(s.logger, "failed to adjust stock", err, slog.String("product_id", id), slog.Int("delta", delta))
	}

	s.logger.Info("product stock adjusted", slog.String("product_id", id), slog.Int("delta", delta), slog.Int("stock", updated.Stock))
	return updated, nil
}
