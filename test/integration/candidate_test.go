package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"hireflow_backend/internal/models"
	"hireflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidate_CreateAndGet(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)
	candidateID := helpers.CreateCandidate(t, ts, tenant.Token, "Ada Lovelace")

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/candidates/"+candidateID, tenant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Ada Lovelace")
	assert.Contains(t, bodyStr, string(models.CandidateStatusUploaded))
}

func TestCandidate_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)
	email := fmt.Sprintf("dup_cand_%d@test.com", time.Now().UnixNano())

	fields := map[string]string{"name": "First Entry", "email": email}
	res, _ := ts.SendMultipart(t, http.MethodPost, "/api/v1/candidates", tenant.Token, fields, "", "", nil)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, bodyStr := ts.SendMultipart(t, http.MethodPost, "/api/v1/candidates", tenant.Token, fields, "", "", nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode, bodyStr)
}

func TestCandidate_AssignToEmployee(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)
	_, employeeID := helpers.CreateCompanyUser(t, ts, tenant, models.UserRoleEmployee)
	candidateID := helpers.CreateCandidate(t, ts, tenant.Token, "Assignable Candidate")

	res, bodyStr := ts.SendRequest(t, http.MethodPut, "/api/v1/candidates/"+candidateID+"/assignee",
		tenant.Token, map[string]interface{}{"employee_id": employeeID})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, string(models.CandidateStatusAssigned))

	// Unassigning drops the candidate back to uploaded.
	res, bodyStr = ts.SendRequest(t, http.MethodPut, "/api/v1/candidates/"+candidateID+"/assignee",
		tenant.Token, map[string]interface{}{"employee_id": nil})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, string(models.CandidateStatusUploaded))
}

func TestCandidate_TenantIsolation(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenantA := helpers.RegisterTenant(t, ts)
	tenantB := helpers.RegisterTenant(t, ts)

	candidateID := helpers.CreateCandidate(t, ts, tenantA.Token, "Private Candidate")

	// Another company must not see the candidate.
	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/candidates/"+candidateID, tenantB.Token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/candidates", tenantB.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, bodyStr, "Private Candidate")
}

func TestCandidate_EmployeeCannotCreate(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)
	employeeToken, _ := helpers.CreateCompanyUser(t, ts, tenant, models.UserRoleEmployee)

	fields := map[string]string{
		"name":  "Should Not Exist",
		"email": fmt.Sprintf("forbidden_%d@test.com", time.Now().UnixNano()),
	}
	res, _ := ts.SendMultipart(t, http.MethodPost, "/api/v1/candidates", employeeToken, fields, "", "", nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestCandidate_ListFilterByStatus(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)
	candidateID := helpers.CreateCandidate(t, ts, tenant.Token, "Scheduled Candidate")
	helpers.ScheduleInterview(t, ts, tenant.Token, candidateID)
	helpers.CreateCandidate(t, ts, tenant.Token, "Fresh Candidate")

	res, bodyStr := ts.SendRequest(t, http.MethodGet,
		"/api/v1/candidates?status=interview_scheduled", tenant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Scheduled Candidate")
	assert.NotContains(t, bodyStr, "Fresh Candidate")
}

func TestCandidate_PipelineStats(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)
	helpers.CreateCandidate(t, ts, tenant.Token, "Stats One")
	helpers.CreateCandidate(t, ts, tenant.Token, "Stats Two")

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/candidates/stats", tenant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var stats struct {
		Counts map[string]int64 `json:"counts"`
		Total  int64            `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &stats))
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(2), stats.Counts[string(models.CandidateStatusUploaded)])
}
