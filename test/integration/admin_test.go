package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"hireflow_backend/internal/models"
	"hireflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_ListCompanies(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)
	adminToken, _ := helpers.CreateAdminUser(t, ts, ts.DB, tenant.CompanyID)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/companies", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, tenant.CompanyID)
}

func TestAdmin_HRCannotAccess(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/companies", tenant.Token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

// TestAdmin_ReconcileRepairsDriftedStatus corrupts a candidate row directly
// and checks that reconciliation puts the status back where the interview
// history says it should be.
func TestAdmin_ReconcileRepairsDriftedStatus(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)
	adminToken, _ := helpers.CreateAdminUser(t, ts, ts.DB, tenant.CompanyID)

	candidateID := helpers.CreateCandidate(t, ts, tenant.Token, "Drifted Candidate")
	helpers.ScheduleInterview(t, ts, tenant.Token, candidateID)

	// Simulate drift: the row claims uploaded while an interview is scheduled.
	err := ts.DB.Model(&models.Candidate{}).
		Where("id = ?", candidateID).
		Update("status", models.CandidateStatusUploaded).Error
	require.NoError(t, err)

	res, bodyStr := ts.SendRequest(t, http.MethodPost,
		"/api/v1/admin/companies/"+tenant.CompanyID+"/reconcile", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var result struct {
		Scanned  int `json:"scanned"`
		Repaired []struct {
			CandidateID string `json:"candidate_id"`
			OldStatus   string `json:"old_status"`
			NewStatus   string `json:"new_status"`
		} `json:"repaired"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &result))
	require.Len(t, result.Repaired, 1)
	assert.Equal(t, candidateID, result.Repaired[0].CandidateID)
	assert.Equal(t, string(models.CandidateStatusUploaded), result.Repaired[0].OldStatus)
	assert.Equal(t, string(models.CandidateStatusInterviewScheduled), result.Repaired[0].NewStatus)
}

func TestAdmin_ReconcileLeavesHealthyAlone(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)
	adminToken, _ := helpers.CreateAdminUser(t, ts, ts.DB, tenant.CompanyID)

	helpers.CreateCandidate(t, ts, tenant.Token, "Healthy Candidate")

	res, bodyStr := ts.SendRequest(t, http.MethodPost,
		"/api/v1/admin/companies/"+tenant.CompanyID+"/reconcile", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var result struct {
		Repaired []json.RawMessage `json:"repaired"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &result))
	assert.Empty(t, result.Repaired)
}
