package integration

import (
	"fmt"
	"time"

	"github.com/BradenHooton/gridboard/internal/repositories"
	"github.com/BradenHooton/gridboard/internal/settings"
	"github.com/BradenHooton/gridboard/internal/tableview"
)

// Built-in demo session tokens
const (
	AdminToken  = "admin-token-123"
	EditorToken = "editor-token-456"
	UserToken   = "user-token-789"
)

// UsersSettingsKey is the view-settings key of the user management table
const UsersSettingsKey = "users-management-settings"

// TestSeed is a small deterministic dataset
func TestSeed() repositories.SeedConfig {
	return repositories.SeedConfig{
		Seed:     7,
		Users:    30,
		Products: 20,
		Now:      time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
	}
}

// TestSettingsKey generates a unique settings key using a timestamp
func TestSettingsKey(suffix string) string {
	return fmt.Sprintf("test-%d-%s", time.Now().UnixNano(), suffix)
}

// SampleSettings hides email and pins fullName to the left edge
func SampleSettings() settings.ViewSettings {
	return settings.ViewSettings{
		ColumnVisibility: map[string]bool{"email": false},
		ColumnSticky:     map[string]tableview.Sticky{"fullName": tableview.StickyLeft},
	}
}
