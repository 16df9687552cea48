package services

import (
	"strings"

	"github.com/BradenHooton/gridboard/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var permissionDescriptions = map[string]string{
	models.PermissionUserRead:           "View user information",
	models.PermissionUserCreate:         "Create new users",
	models.PermissionUserUpdate:         "Update user information",
	models.PermissionUserDelete:         "Delete users",
	models.PermissionUserSetPassword:    "Reset user passwords",
	models.PermissionUserSetRole:        "Assign roles to users",
	models.PermissionUserSetPermissions: "Grant individual permissions to users",
	models.PermissionRoleRead:           "View roles",
	models.PermissionRoleCreate:         "Create new roles",
	models.PermissionRoleUpdate:         "Update role information",
	models.PermissionRoleDelete:         "Delete roles",
	models.PermissionRoleSetPermissions: "Grant permissions to roles",
	models.PermissionRead:               "View the permission catalogue",
}

// Permissions lists every permission with a display name derived from
// its key ("user_set_role" becomes "User Set Role").
func Permissions() []models.PermissionInfo {
	title := cases.Title(language.English)

	keys := models.AllPermissions()
	out := make([]models.PermissionInfo, len(keys))
	for i, key := range keys {
		desc, ok := permissionDescriptions[key]
		if !ok {
			desc = key
		}
		out[i] = models.PermissionInfo{
			Key:         key,
			Name:        title.String(strings.ReplaceAll(key, "_", " ")),
			Description: desc,
		}
	}
	return out
}
