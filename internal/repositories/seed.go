package repositories

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/BradenHooton/gridboard/internal/models"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SeedConfig sizes the generated demo dataset
type SeedConfig struct {
	Seed     uint64
	Users    int
	Products int
	// Now anchors relative timestamps such as last login
	Now time.Time
}

var (
	firstNames = []string{
		"Nguyễn", "Trần", "Lê", "Phạm", "Hoàng", "Huỳnh", "Phan", "Vũ", "Võ", "Đặng",
		"Bùi", "Đỗ", "Hồ", "Ngô", "Dương", "Lý", "Mai", "Tô", "Lại", "Đinh",
	}
	middleNames = []string{
		"Văn", "Thị", "Minh", "Thanh", "Hoàng", "Xuân", "Thu", "Hạ", "Đông", "Nam",
		"Bắc", "Tây", "Quang", "Hùng", "Dũng", "An", "Bình", "Cường", "Đức",
	}
	lastNames = []string{
		"An", "Bình", "Cường", "Dũng", "Hùng", "Khánh", "Long", "Minh", "Nam", "Phúc",
		"Quân", "Sơn", "Tài", "Thành", "Tùng", "Vinh", "Xuân", "Yên", "Linh", "Mai",
		"Hoa", "Lan", "Hương", "Thảo", "Trang", "Hằng", "Nga", "Oanh", "Phương", "Quyên",
	}
	emailDomains = []string{"company.com", "business.vn", "corp.com", "enterprise.vn", "tech.com", "group.vn"}
	departments  = []string{"IT", "HR", "Finance", "Marketing", "Sales", "Operations", "Admin", "Support"}

	productNames = []string{
		"iPhone 15 Pro Max", "Samsung Galaxy S24", "MacBook Air M3", "Dell XPS 13",
		"White Oxford Shirt", "Slim Fit Jeans", "Summer Dress", "Nike Running Shoes",
		"Learning JavaScript", "UX/UI Design Handbook", "Digital Marketing", "Business Administration",
		"Rice Cooker", "Blender Pro", "Standing Desk", "Office Chair",
		"Adidas Football", "Wilson Tennis Racket", "Road Bike", "Treadmill",
		"Moisturizing Cream", "MAC Lipstick", "Chanel Perfume", "Maybelline Mascara",
	}
)

var seedEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// roleSpec lists the seeded roles; weight is the share of generated users
// that receive the role
var roleSpecs = []struct {
	name        string
	description string
	color       string
	weight      float64
	permissions []string
}{
	{"Admin", "Full system access", "#dc2626", 0, models.AllPermissions()},
	{"User", "Regular user with basic access", "#6b7280", 0.60, []string{models.PermissionUserRead, models.PermissionRead}},
	{"Manager", "Manages users and roles", "#2563eb", 0.03, []string{
		models.PermissionUserRead, models.PermissionUserUpdate, models.PermissionUserCreate,
		models.PermissionUserSetRole, models.PermissionRoleRead, models.PermissionRead,
	}},
	{"Moderator", "Reviews and updates user information", "#ea580c", 0.10, []string{
		models.PermissionUserRead, models.PermissionUserUpdate, models.PermissionRoleRead, models.PermissionRead,
	}},
	{"Editor", "Reads basic information", "#16a34a", 0.20, []string{models.PermissionUserRead, models.PermissionRead}},
	{"HR Manager", "Manages staff accounts and passwords", "#db2777", 0.02, []string{
		models.PermissionUserRead, models.PermissionUserCreate, models.PermissionUserUpdate,
		models.PermissionUserSetPassword, models.PermissionUserSetRole, models.PermissionRoleRead, models.PermissionRead,
	}},
	{"Guest", "Can only view permissions", "#9ca3af", 0, []string{models.PermissionRead}},
	{"Support", "Helps users with their accounts", "#ca8a04", 0.05, []string{
		models.PermissionUserRead, models.PermissionUserUpdate, models.PermissionUserSetPassword, models.PermissionRead,
	}},
	{"Analyst", "Reads data for reporting", "#0891b2", 0, []string{
		models.PermissionUserRead, models.PermissionRoleRead, models.PermissionRead,
	}},
	{"Intern", "Minimal access", "#a3a3a3", 0, []string{models.PermissionRead}},
	{"Developer", "Maintains roles and permissions", "#7c3aed", 0, []string{
		models.PermissionUserRead, models.PermissionRoleRead, models.PermissionRoleCreate,
		models.PermissionRoleUpdate, models.PermissionRoleSetPermissions, models.PermissionRead,
	}},
	{"Team Lead", "Manages users within a team", "#0d9488", 0, []string{
		models.PermissionUserRead, models.PermissionUserUpdate, models.PermissionUserCreate,
		models.PermissionRoleRead, models.PermissionRead,
	}},
}

var categories = []models.Category{
	{ID: "electronics", Name: "Electronics", Description: "Phones, laptops and gadgets"},
	{ID: "clothing", Name: "Clothing", Description: "Fashion and apparel"},
	{ID: "books", Name: "Books", Description: "Books and learning material"},
	{ID: "home", Name: "Home", Description: "Household appliances and furniture"},
	{ID: "sports", Name: "Sports", Description: "Sporting goods"},
	{ID: "beauty", Name: "Beauty", Description: "Cosmetics and care"},
}

// Seed generates a deterministic demo dataset. The same config always
// yields the same records.
func Seed(cfg SeedConfig) Dataset {
	if cfg.Now.IsZero() {
		cfg.Now = seedEpoch.AddDate(1, 0, 0)
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	roles := seedRoles()
	return Dataset{
		Roles:      roles,
		Users:      seedUsers(rng, roles, cfg),
		Categories: append([]models.Category(nil), categories...),
		Products:   seedProducts(rng, cfg),
	}
}

func seedRoles() []models.Role {
	roles := make([]models.Role, len(roleSpecs))
	for i, spec := range roleSpecs {
		roles[i] = models.Role{
			ID:          strconv.Itoa(i + 1),
			Name:        spec.name,
			Description: spec.description,
			Color:       spec.color,
			Permissions: append([]string(nil), spec.permissions...),
			CreatedAt:   seedEpoch,
			UpdatedAt:   seedEpoch,
		}
	}
	return roles
}

func seedUsers(rng *rand.Rand, roles []models.Role, cfg SeedConfig) []*models.User {
	at := func(d time.Duration) *time.Time {
		t := cfg.Now.Add(-d)
		return &t
	}

	predefined := []*models.User{
		{
			ID: "1", Email: "admin@example.com", Username: "admin", FullName: "Quản trị viên hệ thống",
			Avatar: "/avatars/admin.jpg", Role: roles[0], IsActive: true,
			CreatedAt: seedEpoch, UpdatedAt: seedEpoch, LastLoginAt: at(0),
		},
		{
			ID: "2", Email: "manager@example.com", Username: "manager", FullName: "Nguyễn Văn Quản lý",
			Avatar: "/avatars/manager.jpg", Role: roles[2], IsActive: true,
			CreatedAt: seedEpoch.AddDate(0, 0, 14), UpdatedAt: seedEpoch.AddDate(0, 0, 14), LastLoginAt: at(2 * time.Hour),
		},
		{
			ID: "3", Email: "user@example.com", Username: "user", FullName: "Trần Thị Người dùng",
			Role: roles[1], IsActive: true,
			CreatedAt: seedEpoch.AddDate(0, 1, 0), UpdatedAt: seedEpoch.AddDate(0, 1, 0), LastLoginAt: at(24 * time.Hour),
		},
	}

	users := make([]*models.User, 0, max(cfg.Users, len(predefined)))
	for _, u := range predefined[:min(len(predefined), cfg.Users)] {
		u.Role = u.Role.Clone()
		u.Permissions = append([]string(nil), u.Role.Permissions...)
		users = append(users, u)
	}

	year := seedEpoch.AddDate(1, 0, -1).Sub(seedEpoch)
	for i := len(predefined) + 1; i <= cfg.Users; i++ {
		fullName := fmt.Sprintf("%s %s %s", pick(rng, firstNames), pick(rng, middleNames), pick(rng, lastNames))
		last := lastNames[rng.IntN(len(lastNames))]
		username := fmt.Sprintf("%s_%s_%d", strings.ToLower(pick(rng, departments)), asciiFold(last), i)
		role := pickRole(rng, roles).Clone()

		createdAt := seedEpoch.Add(time.Duration(rng.Int64N(int64(year))))
		active := rng.Float64() > 0.05

		var lastLogin *time.Time
		if active {
			lastLogin = at(time.Duration(rng.Int64N(int64(30 * 24 * time.Hour))))
		}

		var avatar string
		if rng.Float64() > 0.7 {
			avatar = "/avatars/" + username + ".jpg"
		}

		users = append(users, &models.User{
			ID:          strconv.Itoa(i),
			Email:       username + "@" + pick(rng, emailDomains),
			Username:    username,
			FullName:    fullName,
			Avatar:      avatar,
			Role:        role,
			Permissions: append([]string(nil), role.Permissions...),
			IsActive:    active,
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
			LastLoginAt: lastLogin,
		})
	}
	return users
}

func seedProducts(rng *rand.Rand, cfg SeedConfig) []*models.Product {
	year := seedEpoch.AddDate(1, 0, -1).Sub(seedEpoch)
	products := make([]*models.Product, 0, cfg.Products)

	for i := 1; i <= cfg.Products; i++ {
		category := categories[rng.IntN(len(categories))]
		name := fmt.Sprintf("%s %d", pick(rng, productNames), i)
		price := float64(rng.IntN(5_000_000) + 50_000)
		stock := rng.IntN(1000)
		minStock := rng.IntN(50) + 10

		var originalPrice *float64
		if rng.Float64() > 0.7 {
			op := price + float64(int(price*0.2))
			originalPrice = &op
		}

		status := models.ProductStatusActive
		switch {
		case stock == 0:
			status = models.ProductStatusOutOfStock
		case rng.Float64() > 0.9:
			status = models.ProductStatusDiscontinued
		case rng.Float64() > 0.95:
			status = models.ProductStatusInactive
		}

		var images, tags []string
		if rng.Float64() > 0.3 {
			images = []string{fmt.Sprintf("/images/products/%s-%04d.jpg", category.ID, i)}
		}
		if rng.Float64() > 0.5 {
			tags = []string{"hot", "sale", "new"}
		}

		createdAt := seedEpoch.Add(time.Duration(rng.Int64N(int64(year))))
		products = append(products, &models.Product{
			ID:            fmt.Sprintf("product-%d", i),
			Name:          name,
			SKU:           fmt.Sprintf("SKU-%s-%04d", strings.ToUpper(category.ID), i),
			Description:   fmt.Sprintf("Detailed description for %s. A high quality product.", name),
			Price:         price,
			OriginalPrice: originalPrice,
			Category:      category,
			Stock:         stock,
			MinStock:      minStock,
			MaxStock:      minStock * 10,
			Status:        status,
			IsActive:      rng.Float64() > 0.1,
			IsFeatured:    rng.Float64() > 0.8,
			Images:        images,
			Tags:          tags,
			Weight:        rng.Float64() * 10,
			Dimensions: &models.Dimensions{
				Length: rng.Float64() * 100,
				Width:  rng.Float64() * 100,
				Height: rng.Float64() * 100,
			},
			CreatedAt:      createdAt,
			UpdatedAt:      createdAt,
			CreatedBy:      "admin",
			LastModifiedBy: "admin",
		})
	}
	return products
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}

// pickRole draws a role by the weights in roleSpecs
func pickRole(rng *rand.Rand, roles []models.Role) models.Role {
	x := rng.Float64()
	cumulative := 0.0
	for i, spec := range roleSpecs {
		if spec.weight == 0 {
			continue
		}
		cumulative += spec.weight
		if x < cumulative {
			return roles[i]
		}
	}
	return roles[1]
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// asciiFold lower-cases s and strips diacritics for use in usernames
func asciiFold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	folded = strings.NewReplacer("Đ", "d", "đ", "d").Replace(folded)
	return strings.ToLower(folded)
}
