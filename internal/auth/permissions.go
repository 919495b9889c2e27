package auth

// Built-in RBAC permissions per role. Company-defined custom roles extend
// these through models.Role; this map covers the platform defaults.
var Permissions = map[string][]string{
	"admin": {
		"companies:read",
		"companies:write",
		"users:read",
		"users:write",
		"users:delete",
		"candidates:read",
		"candidates:write",
		"candidates:delete",
		"interviews:read",
		"interviews:write",
		"verdicts:read",
		"verdicts:write",
		"ai_config:read",
		"ai_config:write",
		"audit:read",
		"system:admin",
	},
	"hr": {
		"users:read",
		"candidates:read",
		"candidates:write",
		"candidates:delete",
		"interviews:read",
		"interviews:write",
		"verdicts:read",
		"verdicts:write",
		"ai_config:read",
		"ai_config:write",
		"audit:read",
	},
	"employee": {
		"candidates:read",
		"interviews:read",
		"interviews:write",
		"verdicts:read",
		"verdicts:write",
	},
	"candidate": {
		"candidates:read:self",
		"interviews:read:self",
	},
}

// knownPermissions is the union of every built-in list; custom roles may only
// grant permissions from this catalog.
var knownPermissions = func() map[string]bool {
	known := make(map[string]bool)
	for _, perms := range Permissions {
		for _, p := range perms {
			known[p] = true
		}
	}
	return known
}()

// HasPermission reports whether a role carries the given permission.
func HasPermission(role, permission string) bool {
	for _, p := range Permissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// KnownPermission reports whether the permission string exists in the catalog.
func KnownPermission(permission string) bool {
	return knownPermissions[permission]
}
