package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"hireflow_backend/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Tenant is a registered company with its first HR user, ready for API calls.
type Tenant struct {
	Token     string
	CompanyID string
	UserID    string
	Email     string
}

// RegisterTenant registers a fresh company through the API. The company name
// and email are unique per call so parallel tests do not collide.
func RegisterTenant(t *testing.T, ts *TestServer) *Tenant {
	suffix := time.Now().UnixNano()
	body := map[string]interface{}{
		"company_name": fmt.Sprintf("Test Company %d", suffix),
		"name":         "Test HR",
		"email":        fmt.Sprintf("hr_%d@test.com", suffix),
		"password":     "super_password123",
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "registration should succeed: "+bodyStr)

	var resp struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID        string `json:"id"`
			CompanyID string `json:"company_id"`
			Email     string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	require.NotEmpty(t, resp.AccessToken)

	return &Tenant{
		Token:     resp.AccessToken,
		CompanyID: resp.User.CompanyID,
		UserID:    resp.User.ID,
		Email:     resp.User.Email,
	}
}

// CreateCompanyUser creates a user inside the tenant through the API and
// logs them in. Returns the new user's token and id.
func CreateCompanyUser(t *testing.T, ts *TestServer, tenant *Tenant, role models.UserRole) (string, string) {
	email := fmt.Sprintf("%s_%d@test.com", role, time.Now().UnixNano())
	password := "password_123456"

	body := map[string]interface{}{
		"name":     "Test " + string(role),
		"email":    email,
		"password": password,
		"role":     string(role),
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/users", tenant.Token, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "user creation should succeed: "+bodyStr)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))

	token := Login(t, ts, email, password)
	return token, created.ID
}

// Login authenticates through the API and returns the access token.
func Login(t *testing.T, ts *TestServer, email, password string) string {
	body := map[string]interface{}{"email": email, "password": password}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", body)
	require.Equal(t, http.StatusOK, res.StatusCode, "login should succeed: "+bodyStr)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

// CreateAdminUser inserts a platform admin straight into the database (there
// is no API route that creates admins) and logs them in.
func CreateAdminUser(t *testing.T, ts *TestServer, db *gorm.DB, companyID string) (string, *models.User) {
	email := fmt.Sprintf("admin_%d@test.com", time.Now().UnixNano())
	password := "admin_password123"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	admin := &models.User{
		CompanyID:    companyID,
		Email:        email,
		Name:         "Platform Admin",
		PasswordHash: string(hash),
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	require.NoError(t, db.Create(admin).Error)

	return Login(t, ts, email, password), admin
}

// CreateJobTemplate creates a job template through the API and returns its id.
func CreateJobTemplate(t *testing.T, ts *TestServer, token, title string) string {
	body := map[string]interface{}{
		"title":        title,
		"description":  "Test position",
		"requirements": []string{"Go", "PostgreSQL"},
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/job-templates", token, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "template creation should succeed: "+bodyStr)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
	return created.ID
}

// CreateCandidate creates a candidate through the API (no resume file).
func CreateCandidate(t *testing.T, ts *TestServer, token, name string) string {
	email := fmt.Sprintf("cand_%d@test.com", time.Now().UnixNano())
	res, bodyStr := ts.SendMultipart(t, http.MethodPost, "/api/v1/candidates", token,
		map[string]string{"name": name, "email": email}, "", "", nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, "candidate creation should succeed: "+bodyStr)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
	return created.ID
}

// ScheduleInterview schedules an interview for the candidate and returns the
// interview id.
func ScheduleInterview(t *testing.T, ts *TestServer, token, candidateID string) string {
	body := map[string]interface{}{
		"candidate_id": candidateID,
		"scheduled_at": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/interviews", token, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "interview scheduling should succeed: "+bodyStr)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
	return created.ID
}
