package query

import (
	"time"

	"github.com/BradenHooton/gridboard/internal/models"
)

const (
	ToggleShowActive     = "showActive"
	ToggleShowInactive   = "showInactive"
	ToggleShowFeatured   = "showFeatured"
	ToggleShowOutOfStock = "showOutOfStock"

	FilterRole     = "roleFilter"
	FilterStatus   = "statusFilter"
	FilterCategory = "categoryFilter"
	FilterDateFrom = "dateFrom"
	FilterDateTo   = "dateTo"
	FilterPriceMin = "priceFrom"
	FilterPriceMax = "priceTo"
	FilterStockMin = "stockFrom"
	FilterStockMax = "stockTo"
)

// UserSchema queries the user collection
func UserSchema(pageSize int) *Schema[*models.User] {
	if pageSize < 1 {
		pageSize = 10
	}

	return &Schema[*models.User]{
		Name: "users",
		Defaults: Defaults{
			Limit:      pageSize,
			SortBy:     "fullName",
			SortOrder:  Asc,
			FilterKeys: []string{FilterRole, FilterStatus, FilterDateFrom, FilterDateTo},
			Toggles: map[string]bool{
				ToggleShowActive:   true,
				ToggleShowInactive: true,
			},
		},
		DefaultSort: "fullName",
		SortKeys: map[string]SortKey[*models.User]{
			"id":          NaturalKey(func(u *models.User) string { return u.ID }),
			"fullName":    StringKey(func(u *models.User) string { return u.FullName }),
			"username":    StringKey(func(u *models.User) string { return u.Username }),
			"email":       StringKey(func(u *models.User) string { return u.Email }),
			"role":        StringKey(userRoleName),
			"roles":       StringKey(userRoleName),
			"createdAt":   TimeKey(func(u *models.User) *time.Time { return &u.CreatedAt }),
			"lastLoginAt": TimeKey(func(u *models.User) *time.Time { return u.LastLoginAt }),
			"isActive":    BoolKey(func(u *models.User) bool { return u.IsActive }),
		},
		Predicate: userPredicate,
		IsActive:  func(u *models.User) bool { return u.IsActive },
		Group:     userRoleName,
	}
}

func userRoleName(u *models.User) string {
	return u.Role.Name
}

func userPredicate(spec Spec) Predicate[*models.User] {
	isActive := func(u *models.User) bool { return u.IsActive }
	isInactive := func(u *models.User) bool { return !u.IsActive }

	return And(
		Search(spec.Search,
			func(u *models.User) string { return u.FullName },
			func(u *models.User) string { return u.Username },
			func(u *models.User) string { return u.Email },
			userRoleName,
		),
		OneOf(spec.Filter(FilterRole), userRoleName, true),
		TriState(spec.Filter(FilterStatus), "active", "inactive", isActive),
		DateRange(spec.Filter(FilterDateFrom), spec.Filter(FilterDateTo),
			func(u *models.User) time.Time { return u.CreatedAt }),
		Unless(spec.Toggle(ToggleShowActive, true), isActive),
		Unless(spec.Toggle(ToggleShowInactive, true), isInactive),
	)
}
