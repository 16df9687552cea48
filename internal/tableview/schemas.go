package tableview

import (
	"strings"

	"github.com/BradenHooton/gridboard/internal/models"
)

func badge(v CellValue) string {
	return v.Text(DefaultLocale)
}

// UserColumns is the column schema of the user management table
func UserColumns() []Column {
	return []Column{
		NewColumn("no", "No", 60, Bounds(50, 80), Unsortable(), Fixed(), Pinned(StickyLeft), Aligned(AlignCenter), Rendered(badge)),
		NewColumn("fullName", "Full name", 180, Bounds(120, 250), AutoWidth()),
		NewColumn("username", "Username", 140, Bounds(100, 0), AutoWidth()),
		NewColumn("email", "Email", 220, Bounds(150, 300), AutoWidth(), Rendered(badge)),
		NewColumn("roles", "Role", 120, Bounds(100, 150), Fixed(), Aligned(AlignCenter), Rendered(badge)),
		NewColumn("isActive", "Status", 110, Bounds(100, 0), Fixed(), AutoWidth(), Aligned(AlignCenter), Rendered(badge)),
		NewColumn("createdAt", "Created", 100, Bounds(90, 120), Fixed(), Aligned(AlignCenter), Rendered(badge)),
		NewColumn("lastLoginAt", "Last login", 100, Bounds(90, 0), Aligned(AlignCenter), Rendered(badge)),
	}
}

// ProductColumns is the column schema of the product management table
func ProductColumns() []Column {
	return []Column{
		NewColumn("select", "", 50, Bounds(50, 0), Unsortable(), Fixed(), Pinned(StickyLeft)),
		NewColumn("image", "Image", 80, Bounds(80, 0), Unsortable(), Fixed(), Pinned(StickyLeft)),
		NewColumn("name", "Product name", 250, Bounds(200, 0), Pinned(StickyLeft), AutoWidth()),
		NewColumn("sku", "SKU", 120, Bounds(100, 0)),
		NewColumn("category", "Category", 150, Bounds(120, 0), Rendered(badge)),
		NewColumn("price", "Price", 120, Bounds(100, 0), Aligned(AlignRight)),
		NewColumn("stock", "Stock", 100, Bounds(80, 0), Aligned(AlignRight)),
		NewColumn("status", "Status", 120, Bounds(100, 0), Rendered(badge)),
		NewColumn("featured", "Featured", 80, Bounds(80, 0), Unsortable(), Rendered(badge)),
		NewColumn("createdAt", "Created", 130, Bounds(120, 0), Rendered(badge)),
		NewColumn("actions", "Actions", 100, Bounds(100, 0), Unsortable(), Fixed(), Pinned(StickyRight)),
	}
}

// SchemaFor returns the column schema registered under a table key
func SchemaFor(table string) ([]Column, bool) {
	switch strings.TrimSuffix(table, "-management-settings") {
	case "users":
		return UserColumns(), true
	case "products":
		return ProductColumns(), true
	default:
		return nil, false
	}
}

// UserRow exposes a user to the table
type UserRow struct{ *models.User }

func (r UserRow) Cell(key string) CellValue {
	u := r.User
	switch key {
	case "id":
		return String(u.ID)
	case "fullName":
		return String(u.FullName)
	case "username":
		return String(u.Username)
	case "email":
		return String(u.Email)
	case "roles", "role":
		return Labeled(u.Role.Name)
	case "roles.name":
		return String(u.Role.Name)
	case "roles.id":
		return String(u.Role.ID)
	case "isActive":
		return Bool(u.IsActive)
	case "createdAt":
		return Date(u.CreatedAt)
	case "updatedAt":
		return Date(u.UpdatedAt)
	case "lastLoginAt":
		return OptionalDate(u.LastLoginAt)
	default:
		return Empty()
	}
}

// ProductRow exposes a product to the table
type ProductRow struct{ *models.Product }

func (r ProductRow) Cell(key string) CellValue {
	p := r.Product
	switch key {
	case "id":
		return String(p.ID)
	case "name":
		return String(p.Name)
	case "sku":
		return String(p.SKU)
	case "description":
		return String(p.Description)
	case "category":
		return Labeled(p.Category.Name)
	case "category.name":
		return String(p.Category.Name)
	case "category.id":
		return String(p.Category.ID)
	case "price":
		return Number(p.Price)
	case "stock":
		return Number(float64(p.Stock))
	case "minStock":
		return Number(float64(p.MinStock))
	case "status":
		return String(p.Status)
	case "isActive":
		return Bool(p.IsActive)
	case "featured", "isFeatured":
		return Bool(p.IsFeatured)
	case "createdAt":
		return Date(p.CreatedAt)
	case "updatedAt":
		return Date(p.UpdatedAt)
	default:
		return Empty()
	}
}

func UserRows(users []*models.User) []Row {
	rows := make([]Row, len(users))
	for i, u := range users {
		rows[i] = UserRow{u}
	}
	return rows
}

func ProductRows(products []*models.Product) []Row {
	rows := make([]Row, len(products))
	for i, p := range products {
		rows[i] = ProductRow{p}
	}
	return rows
}
