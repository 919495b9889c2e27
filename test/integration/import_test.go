package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"hireflow_backend/internal/models"
	"hireflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildImportXLSX assembles an in-memory workbook with a header row plus the
// given candidate rows.
func buildImportXLSX(t *testing.T, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"name", "email", "phone"}))
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

// waitForImportJob polls the job endpoint until the background worker has
// finished it.
func waitForImportJob(t *testing.T, ts *helpers.TestServer, token, jobID string) string {
	t.Helper()

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/imports/"+jobID, token, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

		status := extractField(t, bodyStr, "status")
		if status == string(models.ImportJobStatusCompleted) || status == string(models.ImportJobStatusFailed) {
			return bodyStr
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("import job %s did not finish in time", jobID)
	return ""
}

func TestImport_Success(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)

	suffix := time.Now().UnixNano()
	content := buildImportXLSX(t, [][]string{
		{"Imported One", fmt.Sprintf("imp1_%d@test.com", suffix), "+77001112233"},
		{"Imported Two", fmt.Sprintf("imp2_%d@test.com", suffix), ""},
	})

	res, bodyStr := ts.SendMultipart(t, http.MethodPost, "/api/v1/imports", tenant.Token,
		nil, "file", "candidates.xlsx", content)
	require.Equal(t, http.StatusAccepted, res.StatusCode, bodyStr)

	jobID := extractField(t, bodyStr, "id")
	finalBody := waitForImportJob(t, ts, tenant.Token, jobID)

	var job struct {
		Status       string `json:"status"`
		TotalRows    int    `json:"total_rows"`
		SuccessCount int    `json:"success_count"`
		FailureCount int    `json:"failure_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(finalBody), &job))
	assert.Equal(t, string(models.ImportJobStatusCompleted), job.Status)
	assert.Equal(t, 2, job.TotalRows)
	assert.Equal(t, 2, job.SuccessCount)
	assert.Equal(t, 0, job.FailureCount)

	// Imported candidates show up in the pipeline as uploaded.
	res, listBody := ts.SendRequest(t, http.MethodGet, "/api/v1/candidates?search=Imported", tenant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, listBody, "Imported One")
	assert.Contains(t, listBody, "Imported Two")
}

func TestImport_BadRowsReported(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)

	suffix := time.Now().UnixNano()
	goodEmail := fmt.Sprintf("good_%d@test.com", suffix)
	content := buildImportXLSX(t, [][]string{
		{"Valid Row", goodEmail, ""},
		{"", fmt.Sprintf("noname_%d@test.com", suffix), ""}, // missing name
		{"Bad Email", "not-an-email", ""},
		{"Duplicate In File", goodEmail, ""},
	})

	res, bodyStr := ts.SendMultipart(t, http.MethodPost, "/api/v1/imports", tenant.Token,
		nil, "file", "mixed.xlsx", content)
	require.Equal(t, http.StatusAccepted, res.StatusCode, bodyStr)

	jobID := extractField(t, bodyStr, "id")
	finalBody := waitForImportJob(t, ts, tenant.Token, jobID)

	var job struct {
		Status       string `json:"status"`
		TotalRows    int    `json:"total_rows"`
		SuccessCount int    `json:"success_count"`
		FailureCount int    `json:"failure_count"`
		Errors       []struct {
			Row    int    `json:"row"`
			Reason string `json:"reason"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(finalBody), &job))
	assert.Equal(t, string(models.ImportJobStatusCompleted), job.Status)
	assert.Equal(t, 4, job.TotalRows)
	assert.Equal(t, 1, job.SuccessCount)
	assert.Equal(t, 3, job.FailureCount)
	assert.Len(t, job.Errors, 3)
}

func TestImport_RejectsNonXLSX(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)

	res, _ := ts.SendMultipart(t, http.MethodPost, "/api/v1/imports", tenant.Token,
		nil, "file", "candidates.csv", []byte("name,email\nA,a@test.com\n"))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
