package integration_test

import (
	"net/http"
	"testing"

	"hireflow_backend/internal/models"
	"hireflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_GetMe(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/users/me", tenant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, tenant.Email)
}

func TestUser_ManagerCycleRejected(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)
	_, aliceID := helpers.CreateCompanyUser(t, ts, tenant, models.UserRoleEmployee)
	_, bobID := helpers.CreateCompanyUser(t, ts, tenant, models.UserRoleEmployee)

	// alice -> bob is fine.
	res, bodyStr := ts.SendRequest(t, http.MethodPut, "/api/v1/users/"+aliceID+"/manager",
		tenant.Token, map[string]interface{}{"manager_id": bobID})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	// bob -> alice closes the loop.
	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/users/"+bobID+"/manager",
		tenant.Token, map[string]interface{}{"manager_id": aliceID})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// Self-management is a cycle of one.
	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/users/"+aliceID+"/manager",
		tenant.Token, map[string]interface{}{"manager_id": aliceID})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestRole_UnknownPermissionRejected(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/roles", tenant.Token,
		map[string]interface{}{
			"name":        "Payroll Clerk",
			"permissions": []string{"payroll:write"},
		})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestRole_CRUD(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/roles", tenant.Token,
		map[string]interface{}{
			"name":        "Interviewer",
			"permissions": []string{"interviews:read", "interviews:write", "verdicts:write"},
		})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	roleID := extractField(t, bodyStr, "id")

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/roles", tenant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Interviewer")

	res, bodyStr = ts.SendRequest(t, http.MethodPatch, "/api/v1/roles/"+roleID, tenant.Token,
		map[string]interface{}{"name": "Senior Interviewer"})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Senior Interviewer")

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/roles/"+roleID, tenant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
}
