package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/query"
	"github.com/BradenHooton/gridboard/internal/repositories"
	"github.com/BradenHooton/gridboard/internal/services"
	pkghttp "github.com/BradenHooton/gridboard/pkg/http"
)

// ProductService defines the interface for product business logic
type ProductService interface {
	Schema() *query.Schema[*models.Product]
	ListProducts(ctx context.Context, spec query.Spec) (services.ProductPage, error)
	SelectProducts(ctx context.Context, spec query.Spec) ([]*models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch repositories.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, delta int) (*models.Product, error)
}

type ProductHandler struct {
	service  ProductService
	logger   *slog.Logger
	ipConfig *pkghttp.IPConfig
}

func NewProductHandler(service ProductService, logger *slog.Logger, ipConfig *pkghttp.IPConfig) *ProductHandler {
	return &ProductHandler{service: service, logger: logger, ipConfig: ipConfig}
}

// ProductListResponse adds the inventory summary to the list envelope
type ProductListResponse struct {
	Success bool `json:"success"`
	query.Result[*models.Product]
	Summary query.ProductSummary `json:"summary"`
}

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	SKU         string   `json:"sku" validate:"required,max=64"`
	Description string   `json:"description" validate:"max=2000"`
	Price       float64  `json:"price" validate:"gte=0"`
	CategoryID  string   `json:"categoryId" validate:"required"`
	Stock       int      `json:"stock" validate:"gte=0"`
	MinStock    int      `json:"minStock" validate:"gte=0"`
	Status      string   `json:"status" validate:"omitempty,oneof=active inactive outOfStock discontinued"`
	IsActive    *bool    `json:"isActive"`
	IsFeatured  bool     `json:"isFeatured"`
	Tags        []string `json:"tags"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=200"`
	SKU         *string  `json:"sku" validate:"omitempty,min=1,max=64"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	CategoryID  *string  `json:"categoryId" validate:"omitempty,min=1"`
	MinStock    *int     `json:"minStock" validate:"omitempty,gte=0"`
	Status      *string  `json:"status" validate:"omitempty,oneof=active inactive outOfStock discontinued"`
	IsActive    *bool    `json:"isActive"`
	IsFeatured  *bool    `json:"isFeatured"`
}

// AdjustStockRequest is the inventory modal's signed quantity change
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"ne=0"`
}

func (h *ProductHandler) RegisterRoutes(router chi.Router, mutate func(http.Handler) http.Handler) {
	router.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/categories", h.ListCategories)
		r.Get("/{id}", h.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(mutate)
			r.Post("/", h.CreateProduct)
			r.Put("/{id}", h.UpdateProduct)
			r.Delete("/{id}", h.DeleteProduct)
			r.Post("/{id}/stock", h.AdjustStock)
		})
	})
}

// @Router /products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	spec := h.service.Schema().Parse(r.URL.Query())

	page, err := h.service.ListProducts(r.Context(), spec)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if page.Records == nil {
		page.Records = []*models.Product{}
	}

	pkghttp.WriteJSON(w, http.StatusOK, ProductListResponse{
		Success: true,
		Result:  page.Result,
		Summary: page.Summary,
	})
}

// @Router /products/categories [get]
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, categories, "")
}

// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, product, "")
}

// @Router /products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product, err := h.service.CreateProduct(actorContext(r, h.ipConfig), &models.Product{
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		Price:       req.Price,
		Category:    models.Category{ID: req.CategoryID},
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		Status:      req.Status,
		IsActive:    isActive,
		IsFeatured:  req.IsFeatured,
		Tags:        req.Tags,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusCreated, product, "Product created")
}

// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.service.UpdateProduct(actorContext(r, h.ipConfig), chi.URLParam(r, "id"), repositories.ProductPatch{
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		MinStock:    req.MinStock,
		Status:      req.Status,
		IsActive:    req.IsActive,
		IsFeatured:  req.IsFeatured,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, product, "Product updated")
}

// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(actorContext(r, h.ipConfig), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, nil, "Product deleted")
}

// AdjustStock adds delta to the stock level. The result may not go below
// zero.
//
// @Router /products/{id}/stock [post]
func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req AdjustStockRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.service.AdjustStock(actorContext(r, h.ipConfig), chi.URLParam(r, "id"), req.Delta)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, product, "Stock updated")
}
