package query

import (
	"time"

	"github.com/BradenHooton/gridboard/internal/models"
)

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestUser(id, fullName, role string, active bool) *models.User {
	return &models.User{
		ID:        id,
		FullName:  fullName,
		Username:  id + ".user",
		Email:     id + "@example.test",
		Role:      models.Role{ID: role, Name: role},
		IsActive:  active,
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	}
}

func newTestProduct(id, name, categoryID string, price float64, stock int) *models.Product {
	return &models.Product{
		ID:        id,
		Name:      name,
		SKU:       "SKU-" + id,
		Price:     price,
		Stock:     stock,
		MinStock:  5,
		Category:  models.Category{ID: categoryID, Name: "Category " + categoryID},
		Status:    models.ProductStatusActive,
		IsActive:  true,
		CreatedAt: baseTime,
	}
}

func ids[T interface{ *models.User | *models.Product }](records []T) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		switch v := any(r).(type) {
		case *models.User:
			out = append(out, v.ID)
		case *models.Product:
			out = append(out, v.ID)
		}
	}
	return out
}
