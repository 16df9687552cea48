package repositories

import (
	"context"
	"slices"
	"strings"

	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/google/uuid"
)

// ProductPatch carries the fields of a partial product update
type ProductPatch struct {
	Name        *string
	SKU         *string
	Description *string
	Price       *float64
	CategoryID  *string
	MinStock    *int
	Status      *string
	IsActive    *bool
	IsFeatured  *bool
	ModifiedBy  string
}

type ProductRepository struct {
	store *Store
}

func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	if err := r.store.latency.Wait(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	products := make([]*models.Product, len(r.store.products))
	for i, p := range r.store.products {
		products[i] = p.Clone()
	}
	return products, nil
}

func (r *ProductRepository) Categories(ctx context.Context) ([]models.Category, error) {
	if err := r.store.latency.Wait(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return slices.Clone(r.store.categories), nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if err := r.store.latency.Wait(ctx); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, _ := r.store.findProduct(id)
	if p == nil {
		return nil, models.Errorf(models.ErrNotFound, "Product not found")
	}
	return p.Clone(), nil
}

// Create inserts a product under a new UUID. Name and SKU are required and
// the SKU must be unique.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.store.latency.Wait(ctx); err != nil {
		return nil, err
	}

	if strings.TrimSpace(product.Name) == "" || strings.TrimSpace(product.SKU) == "" {
		return nil, models.Errorf(models.ErrBadRequest, "Product name and SKU are required")
	}
	if product.Price < 0 || product.Stock < 0 || product.MinStock < 0 {
		return nil, models.Errorf(models.ErrBadRequest, "Price and stock must not be negative")
	}
	if product.Status != "" && !models.ValidProductStatus(product.Status) {
		return nil, models.Errorf(models.ErrBadRequest, "Unknown product status")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.skuTaken(product.SKU, "") {
		return nil, models.Errorf(models.ErrConflict, "SKU already exists")
	}

	created := product.Clone()
	category, ok := r.store.findCategory(created.Category.ID)
	if !ok {
		return nil, models.Errorf(models.ErrBadRequest, "Category not found")
	}
	created.Category = category

	now := r.store.now()
	created.ID = uuid.NewString()
	created.CreatedAt = now
	created.UpdatedAt = now
	created.LastModifiedBy = created.CreatedBy
	if created.Status == "" {
		created.Status = models.ProductStatusActive
	}
	syncStockStatus(created)

	r.store.products = append(r.store.products, created)
	return created.Clone(), nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, patch ProductPatch) (*models.Product, error) {
	if err := r.store.latency.Wait(ctx); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, _ := r.store.findProduct(id)
	if p == nil {
		return nil, models.Errorf(models.ErrNotFound, "Product not found")
	}

	category, err := r.validatePatch(p, patch)
	if err != nil {
		return nil, err
	}

	if patch.SKU != nil {
		p.SKU = *patch.SKU
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.CategoryID != nil {
		p.Category = category
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.MinStock != nil {
		p.MinStock = *patch.MinStock
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	if patch.IsFeatured != nil {
		p.IsFeatured = *patch.IsFeatured
	}
	p.UpdatedAt = r.store.now()
	p.LastModifiedBy = patch.ModifiedBy
	syncStockStatus(p)

	return p.Clone(), nil
}

// validatePatch checks every field of patch against p before any of them is
// applied and resolves the new category, if any. The caller holds the store
// lock.
func (r *ProductRepository) validatePatch(p *models.Product, patch ProductPatch) (models.Category, error) {
	if patch.SKU != nil && *patch.SKU != p.SKU {
		if strings.TrimSpace(*patch.SKU) == "" {
			return models.Category{}, models.Errorf(models.ErrBadRequest, "SKU is required")
		}
		if r.store.skuTaken(*patch.SKU, p.ID) {
			return models.Category{}, models.Errorf(models.ErrConflict, "SKU already exists")
		}
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return models.Category{}, models.Errorf(models.ErrBadRequest, "Product name is required")
	}
	if patch.Price != nil && *patch.Price < 0 {
		return models.Category{}, models.Errorf(models.ErrBadRequest, "Price must not be negative")
	}
	if patch.MinStock != nil && *patch.MinStock < 0 {
		return models.Category{}, models.Errorf(models.ErrBadRequest, "Minimum stock must not be negative")
	}
	if patch.Status != nil && !models.ValidProductStatus(*patch.Status) {
		return models.Category{}, models.Errorf(models.ErrBadRequest, "Unknown product status")
	}

	var category models.Category
	if patch.CategoryID != nil {
		c, ok := r.store.findCategory(*patch.CategoryID)
		if !ok {
			return models.Category{}, models.Errorf(models.ErrBadRequest, "Category not found")
		}
		category = c
	}
	return category, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.latency.Wait(ctx); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, idx := r.store.findProduct(id)
	if p == nil {
		return models.Errorf(models.ErrNotFound, "Product not found")
	}
	r.store.products = slices.Delete(r.store.products, idx, idx+1)
	return nil
}

// AdjustStock adds delta to the stock level. The result may not go below
// zero; the status follows the stock level.
func (r *ProductRepository) AdjustStock(ctx context.Context, id string, delta int, modifiedBy string) (*models.Product, error) {
	if err := r.store.latency.Wait(ctx); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, _ := r.store.findProduct(id)
	if p == nil {
		return nil, models.Errorf(models.ErrNotFound, "Product not found")
	}
	if p.Stock+delta < 0 {
		return nil, models.Errorf(models.ErrBadRequest, "Insufficient stock")
	}

	p.Stock += delta
	p.UpdatedAt = r.store.now()
	p.LastModifiedBy = modifiedBy
	syncStockStatus(p)

	return p.Clone(), nil
}

// syncStockStatus keeps outOfStock in line with the stock level
func syncStockStatus(p *models.Product) {
	switch {
	case p.Stock == 0 && p.Status != models.ProductStatusDiscontinued:
		p.Status = models.ProductStatusOutOfStock
	case p.Stock > 0 && p.Status == models.ProductStatusOutOfStock:
		p.Status = models.ProductStatusActive
	}
}

func (s *Store) findProduct(id string) (*models.Product, int) {
	for i, p := range s.products {
		if p.ID == id {
			return p, i
		}
	}
	return nil, -1
}

func (s *Store) findCategory(id string) (models.Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

func (s *Store) skuTaken(sku, exceptID string) bool {
	return slices.ContainsFunc(s.products, func(p *models.Product) bool {
		return strings.EqualFold(p.SKU, sku) && p.ID != exceptID
	})
}
