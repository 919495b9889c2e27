package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission("admin", "system:admin"))
	assert.True(t, HasPermission("hr", "candidates:write"))
	assert.True(t, HasPermission("employee", "verdicts:write"))

	assert.False(t, HasPermission("employee", "candidates:delete"))
	assert.False(t, HasPermission("candidate", "candidates:write"))
	assert.False(t, HasPermission("hr", "system:admin"))
	assert.False(t, HasPermission("nonexistent", "candidates:read"))
}

func TestKnownPermission(t *testing.T) {
	// Everything any built-in role carries is in the catalog.
	for role, perms := range Permissions {
		for _, p := range perms {
			assert.True(t, KnownPermission(p), "role %s permission %s", role, p)
		}
	}

	assert.False(t, KnownPermission("payroll:write"))
	assert.False(t, KnownPermission(""))
}
