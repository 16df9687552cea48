package models

import "time"

// Product status values
const (
	ProductStatusActive       = "active"
	ProductStatusInactive     = "inactive"
	ProductStatusOutOfStock   = "outOfStock"
	ProductStatusDiscontinued = "discontinued"
)

// ValidProductStatus reports whether s is one of the product status values
func ValidProductStatus(s string) bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusOutOfStock, ProductStatusDiscontinued:
		return true
	}
	return false
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Product struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	SKU            string      `json:"sku"`
	Description    string      `json:"description,omitempty"`
	Price          float64     `json:"price"`
	OriginalPrice  *float64    `json:"originalPrice,omitempty"`
	Category       Category    `json:"category"`
	Stock          int         `json:"stock"`
	MinStock       int         `json:"minStock"`
	MaxStock       int         `json:"maxStock,omitempty"`
	Status         string      `json:"status"`
	IsActive       bool        `json:"isActive"`
	IsFeatured     bool        `json:"isFeatured"`
	Images         []string    `json:"images,omitempty"`
	Tags           []string    `json:"tags,omitempty"`
	Weight         float64     `json:"weight,omitempty"`
	Dimensions     *Dimensions `json:"dimensions,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	CreatedBy      string      `json:"createdBy,omitempty"`
	LastModifiedBy string      `json:"lastModifiedBy,omitempty"`
}

func (p *Product) Clone() *Product {
	c := *p
	c.Images = append([]string(nil), p.Images...)
	c.Tags = append([]string(nil), p.Tags...)
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		c.OriginalPrice = &v
	}
	if p.Dimensions != nil {
		d := *p.Dimensions
		c.Dimensions = &d
	}
	return &c
}

// IsLowStock reports whether stock is positive but at or below the minimum
func (p *Product) IsLowStock() bool {
	return p.Stock > 0 && p.Stock <= p.MinStock
}
