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

func completeBody(behavior, confidence, answer, ats float64, rec string) map[string]interface{} {
	return map[string]interface{}{
		"behavior_score":   behavior,
		"confidence_score": confidence,
		"answer_score":     answer,
		"ats_score":        ats,
		"recommendation":   rec,
		"feedback":         "Solid answers overall.",
	}
}

type completeResult struct {
	CandidateStatus string `json:"candidate_status"`
	HeldForReview   bool   `json:"held_for_review"`
	Interview       struct {
		ID           string   `json:"id"`
		Status       string   `json:"status"`
		OverallScore *float64 `json:"overall_score"`
	} `json:"interview"`
}

// TestPipeline_HireFlow walks the happy path end to end: candidate is
// created, interviewed, passed by the AI and finally hired by a human.
func TestPipeline_HireFlow(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)
	candidateID := helpers.CreateCandidate(t, ts, tenant.Token, "Happy Path Candidate")
	interviewID := helpers.ScheduleInterview(t, ts, tenant.Token, candidateID)

	// AI evaluation comes back clearly positive.
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interviewID+"/complete",
		tenant.Token, completeBody(85, 80, 90, 75, "HIRE"))
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var result completeResult
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &result))
	assert.Equal(t, string(models.CandidateStatusAIPassed), result.CandidateStatus)
	assert.False(t, result.HeldForReview)
	require.NotNil(t, result.Interview.OverallScore)
	assert.InDelta(t, 82.5, *result.Interview.OverallScore, 0.001)

	// Human verdict finishes the pipeline.
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interviewID+"/verdict",
		tenant.Token, map[string]interface{}{"decision": "hire", "comment": "Strong hire"})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"is_override":false`)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/candidates/"+candidateID, tenant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, string(models.CandidateStatusHired))
}

func TestPipeline_VerdictOverride(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)
	candidateID := helpers.CreateCandidate(t, ts, tenant.Token, "Override Candidate")
	interviewID := helpers.ScheduleInterview(t, ts, tenant.Token, candidateID)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interviewID+"/complete",
		tenant.Token, completeBody(30, 25, 35, 60, "REJECT"))
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	// Hiring against a REJECT recommendation is recorded as an override.
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interviewID+"/verdict",
		tenant.Token, map[string]interface{}{"decision": "hire", "comment": "We see potential"})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"is_override":true`)
}

func TestPipeline_DuplicateVerdict(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)
	candidateID := helpers.CreateCandidate(t, ts, tenant.Token, "Double Verdict Candidate")
	interviewID := helpers.ScheduleInterview(t, ts, tenant.Token, candidateID)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interviewID+"/complete",
		tenant.Token, completeBody(70, 70, 70, 70, "HIRE"))
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interviewID+"/verdict",
		tenant.Token, map[string]interface{}{"decision": "reject"})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interviewID+"/verdict",
		tenant.Token, map[string]interface{}{"decision": "hire"})
	assert.Equal(t, http.StatusConflict, res.StatusCode, bodyStr)
}

func TestPipeline_VerdictRoleGuard(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)
	candidateToken, _ := helpers.CreateCompanyUser(t, ts, tenant, models.UserRoleCandidate)
	employeeToken, _ := helpers.CreateCompanyUser(t, ts, tenant, models.UserRoleEmployee)

	candidateID := helpers.CreateCandidate(t, ts, tenant.Token, "Guarded Candidate")
	interviewID := helpers.ScheduleInterview(t, ts, tenant.Token, candidateID)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interviewID+"/complete",
		tenant.Token, completeBody(75, 75, 75, 75, "HIRE"))
	require.Equal(t, http.StatusOK, res.StatusCode)

	// A candidate-role account must not be able to finalize a hire.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interviewID+"/verdict",
		candidateToken, map[string]interface{}{"decision": "hire"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Employees are reviewers and may submit.
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interviewID+"/verdict",
		employeeToken, map[string]interface{}{"decision": "hire"})
	assert.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
}

func TestPipeline_TerminalStatusBlocksScheduling(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)
	candidateID := helpers.CreateCandidate(t, ts, tenant.Token, "Terminal Candidate")
	interviewID := helpers.ScheduleInterview(t, ts, tenant.Token, candidateID)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interviewID+"/complete",
		tenant.Token, completeBody(80, 80, 80, 80, "HIRE"))
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interviewID+"/verdict",
		tenant.Token, map[string]interface{}{"decision": "hire"})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	// A hired candidate cannot re-enter the pipeline.
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/interviews", tenant.Token,
		map[string]interface{}{
			"candidate_id": candidateID,
			"scheduled_at": "2026-10-01T10:00:00Z",
		})
	assert.Equal(t, http.StatusConflict, res.StatusCode, bodyStr)
}

func TestPipeline_AutoReject(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)

	// Arm auto-reject at 40.
	res, bodyStr := ts.SendRequest(t, http.MethodPut, "/api/v1/company/ai-config", tenant.Token,
		map[string]interface{}{"auto_reject_below": 40.0})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	candidateID := helpers.CreateCandidate(t, ts, tenant.Token, "Auto Reject Candidate")
	interviewID := helpers.ScheduleInterview(t, ts, tenant.Token, candidateID)

	// Overall 25 is below the bar; even a HIRE recommendation loses.
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interviewID+"/complete",
		tenant.Token, completeBody(25, 25, 25, 25, "HIRE"))
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var result completeResult
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &result))
	assert.Equal(t, string(models.CandidateStatusAutoRejected), result.CandidateStatus)
	assert.False(t, result.HeldForReview)
}

func TestPipeline_HeldForReview(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)

	res, bodyStr := ts.SendRequest(t, http.MethodPut, "/api/v1/company/ai-config", tenant.Token,
		map[string]interface{}{"require_employee_review": true})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	candidateID := helpers.CreateCandidate(t, ts, tenant.Token, "Held Candidate")
	interviewID := helpers.ScheduleInterview(t, ts, tenant.Token, candidateID)

	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interviewID+"/complete",
		tenant.Token, completeBody(90, 90, 90, 90, "HIRE"))
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var result completeResult
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &result))
	assert.Equal(t, string(models.CandidateStatusAIReview), result.CandidateStatus)
	assert.True(t, result.HeldForReview)
}

func TestPipeline_CancelFallsBack(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)
	candidateID := helpers.CreateCandidate(t, ts, tenant.Token, "Cancelled Candidate")
	interviewID := helpers.ScheduleInterview(t, ts, tenant.Token, candidateID)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interviewID+"/cancel",
		tenant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	// Unassigned candidate falls back to uploaded.
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/candidates/"+candidateID, tenant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, string(models.CandidateStatusUploaded))
}

func TestPipeline_InvalidScoresRejected(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)
	candidateID := helpers.CreateCandidate(t, ts, tenant.Token, "Bad Scores Candidate")
	interviewID := helpers.ScheduleInterview(t, ts, tenant.Token, candidateID)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/interviews/"+interviewID+"/complete",
		tenant.Token, completeBody(120, 80, 80, 80, "HIRE"))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
