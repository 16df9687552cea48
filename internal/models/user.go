package models

import (
	"time"
)

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email,omitempty"`
	Username     string     `json:"username"`
	FullName     string     `json:"fullName"`
	Avatar       string     `json:"avatar,omitempty"`
	Role         Role       `json:"roles"`
	Permissions  []string   `json:"permissions,omitempty"`
	IsActive     bool       `json:"isActive"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}

// Clone returns a copy that shares no slices with u.
func (u *User) Clone() *User {
	c := *u
	c.Role = u.Role.Clone()
	c.Permissions = append([]string(nil), u.Permissions...)
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		c.LastLoginAt = &t
	}
	return &c
}

type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Permissions []string  `json:"permissions,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

func (r Role) Clone() Role {
	r.Permissions = append([]string(nil), r.Permissions...)
	return r
}

// Permission keys understood by the dashboard
const (
	PermissionUserRead           = "user_read"
	PermissionUserDelete         = "user_delete"
	PermissionUserUpdate         = "user_update"
	PermissionUserCreate         = "user_create"
	PermissionUserSetPassword    = "user_set_password"
	PermissionUserSetRole        = "user_set_role"
	PermissionUserSetPermissions = "user_set_permissions"

	PermissionRoleRead           = "role_read"
	PermissionRoleDelete         = "role_delete"
	PermissionRoleUpdate         = "role_update"
	PermissionRoleCreate         = "role_create"
	PermissionRoleSetPermissions = "role_set_permissions"

	PermissionRead = "permission_read"
)

var allPermissions = []string{
	PermissionUserRead,
	PermissionUserDelete,
	PermissionUserUpdate,
	PermissionUserCreate,
	PermissionUserSetPassword,
	PermissionUserSetRole,
	PermissionUserSetPermissions,
	PermissionRoleRead,
	PermissionRoleDelete,
	PermissionRoleUpdate,
	PermissionRoleCreate,
	PermissionRoleSetPermissions,
	PermissionRead,
}

// AllPermissions returns every known permission key in declaration order
func AllPermissions() []string {
	return append([]string(nil), allPermissions...)
}

// InvalidPermissions returns the entries of perms that are not known permission keys
func InvalidPermissions(perms []string) []string {
	known := make(map[string]bool, len(allPermissions))
	for _, p := range allPermissions {
		known[p] = true
	}

	var invalid []string
	for _, p := range perms {
		if !known[p] {
			invalid = append(invalid, p)
		}
	}
	return invalid
}

// PermissionInfo describes a permission for the permission catalogue
type PermissionInfo struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
