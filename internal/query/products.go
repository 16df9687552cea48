package query

import (
	"time"

	"github.com/BradenHooton/gridboard/internal/models"
)

// ProductSchema queries the product catalogue
func ProductSchema(pageSize int) *Schema[*models.Product] {
	if pageSize < 1 {
		pageSize = 20
	}

	return &Schema[*models.Product]{
		Name: "products",
		Defaults: Defaults{
			Limit:     pageSize,
			SortBy:    "name",
			SortOrder: Asc,
			FilterKeys: []string{
				FilterCategory, FilterStatus,
				FilterPriceMin, FilterPriceMax,
				FilterStockMin, FilterStockMax,
				FilterDateFrom, FilterDateTo,
			},
			Toggles: map[string]bool{
				ToggleShowActive:     true,
				ToggleShowInactive:   true,
				ToggleShowFeatured:   false,
				ToggleShowOutOfStock: false,
			},
		},
		DefaultSort: "name",
		SortKeys: map[string]SortKey[*models.Product]{
			"id":        NaturalKey(func(p *models.Product) string { return p.ID }),
			"name":      StringKey(func(p *models.Product) string { return p.Name }),
			"sku":       StringKey(func(p *models.Product) string { return p.SKU }),
			"category":  StringKey(productCategoryName),
			"price":     NumberKey(func(p *models.Product) float64 { return p.Price }),
			"stock":     NumberKey(func(p *models.Product) float64 { return float64(p.Stock) }),
			"status":    StringKey(func(p *models.Product) string { return p.Status }),
			"createdAt": TimeKey(func(p *models.Product) *time.Time { return &p.CreatedAt }),
		},
		Predicate: productPredicate,
		IsActive:  productIsActive,
		Group:     productCategoryName,
	}
}

func productCategoryName(p *models.Product) string {
	return p.Category.Name
}

func productIsActive(p *models.Product) bool {
	return p.IsActive && p.Status == models.ProductStatusActive
}

func productPredicate(spec Spec) Predicate[*models.Product] {
	featured := spec.Toggle(ToggleShowFeatured, false)

	var onlyFeatured Predicate[*models.Product]
	if featured {
		onlyFeatured = func(p *models.Product) bool { return p.IsFeatured }
	}

	return And(
		Search(spec.Search,
			func(p *models.Product) string { return p.Name },
			func(p *models.Product) string { return p.SKU },
			func(p *models.Product) string { return p.Description },
			productCategoryName,
		),
		OneOf(spec.Filter(FilterCategory), func(p *models.Product) string { return p.Category.ID }, false),
		Equals(spec.Filter(FilterStatus), func(p *models.Product) string { return p.Status }),
		NumberRange(spec.Filter(FilterPriceMin), spec.Filter(FilterPriceMax),
			func(p *models.Product) float64 { return p.Price }),
		NumberRange(spec.Filter(FilterStockMin), spec.Filter(FilterStockMax),
			func(p *models.Product) float64 { return float64(p.Stock) }),
		DateRange(spec.Filter(FilterDateFrom), spec.Filter(FilterDateTo),
			func(p *models.Product) time.Time { return p.CreatedAt }),
		Unless(spec.Toggle(ToggleShowActive, true), func(p *models.Product) bool { return p.IsActive }),
		Unless(spec.Toggle(ToggleShowInactive, true), func(p *models.Product) bool { return !p.IsActive }),
		onlyFeatured,
		Unless(spec.Toggle(ToggleShowOutOfStock, false), func(p *models.Product) bool { return p.Stock == 0 }),
	)
}

// ProductSummary carries the inventory figures shown above the product table
type ProductSummary struct {
	Stats
	OutOfStock   int     `json:"outOfStock"`
	LowStock     int     `json:"lowStock"`
	Featured     int     `json:"featured"`
	AveragePrice float64 `json:"averagePrice"`
	TotalValue   float64 `json:"totalValue"`
}

// SummarizeProducts extends ComputeStats with inventory figures
func SummarizeProducts(products []*models.Product) ProductSummary {
	s := ProductSummary{
		Stats: ComputeStats(products, productIsActive, productCategoryName),
	}
	var priceSum float64
	for _, p := range products {
		if p.Stock == 0 {
			s.OutOfStock++
		}
		if p.IsLowStock() {
			s.LowStock++
		}
		if p.IsFeatured {
			s.Featured++
		}
		priceSum += p.Price
		s.TotalValue += p.Price * float64(p.Stock)
	}
	if len(products) > 0 {
		s.AveragePrice = priceSum / float64(len(products))
	}
	return s
}
