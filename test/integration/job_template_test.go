package integration_test

import (
	"net/http"
	"testing"

	"hireflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobTemplate_CRUD(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)
	templateID := helpers.CreateJobTemplate(t, ts, tenant.Token, "Platform Engineer")

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/job-templates/"+templateID, tenant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Platform Engineer")
	assert.Contains(t, bodyStr, "PostgreSQL")

	res, bodyStr = ts.SendRequest(t, http.MethodPatch, "/api/v1/job-templates/"+templateID, tenant.Token,
		map[string]interface{}{"title": "Senior Platform Engineer", "is_active": false})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Senior Platform Engineer")

	// Inactive templates drop out of the active listing.
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/job-templates?active=true", tenant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, bodyStr, "Senior Platform Engineer")

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/job-templates/"+templateID, tenant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/job-templates/"+templateID, tenant.Token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestJobTemplate_DuplicateTitle(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)
	helpers.CreateJobTemplate(t, ts, tenant.Token, "Data Engineer")

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/job-templates", tenant.Token,
		map[string]interface{}{"title": "Data Engineer"})
	assert.Equal(t, http.StatusConflict, res.StatusCode, bodyStr)
}

func TestJobTemplate_TenantIsolation(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenantA := helpers.RegisterTenant(t, ts)
	tenantB := helpers.RegisterTenant(t, ts)

	templateID := helpers.CreateJobTemplate(t, ts, tenantA.Token, "Secret Role")

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/job-templates/"+templateID, tenantB.Token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
