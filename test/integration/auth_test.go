package integration_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"hireflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	suffix := time.Now().UnixNano()
	email := fmt.Sprintf("founder_%d@test.com", suffix)

	registerBody := map[string]interface{}{
		"company_name": fmt.Sprintf("Register Flow Co %d", suffix),
		"name":         "Founder",
		"email":        email,
		"password":     "super_password123",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "access_token")
	assert.Contains(t, bodyStr, "refresh_token")

	// First user of a tenant is active immediately.
	token := helpers.Login(t, ts, email, "super_password123")
	assert.NotEmpty(t, token)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)

	body := map[string]interface{}{
		"company_name": fmt.Sprintf("Another Co %d", time.Now().UnixNano()),
		"name":         "Second Founder",
		"email":        tenant.Email,
		"password":     "super_password123",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, res.StatusCode, bodyStr)
}

func TestRegister_WeakPassword(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	body := map[string]interface{}{
		"company_name": fmt.Sprintf("Weak Pass Co %d", time.Now().UnixNano()),
		"name":         "Founder",
		"email":        fmt.Sprintf("weak_%d@test.com", time.Now().UnixNano()),
		"password":     "short",
	}
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestLogin_BadPassword(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)

	body := map[string]interface{}{
		"email":    tenant.Email,
		"password": "definitely-wrong",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", body)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, bodyStr, "INVALID_CREDENTIALS")
}

func TestRefreshToken_Rotation(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	suffix := time.Now().UnixNano()
	registerBody := map[string]interface{}{
		"company_name": fmt.Sprintf("Refresh Co %d", suffix),
		"name":         "Founder",
		"email":        fmt.Sprintf("refresh_%d@test.com", suffix),
		"password":     "super_password123",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	refreshToken := extractField(t, bodyStr, "refresh_token")

	// First refresh succeeds and rotates the token.
	res, rotatedStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "",
		map[string]interface{}{"refresh_token": refreshToken})
	assert.Equal(t, http.StatusOK, res.StatusCode, rotatedStr)
	assert.Contains(t, rotatedStr, "access_token")

	// The old token is dead after rotation.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "",
		map[string]interface{}{"refresh_token": refreshToken})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	tenant := helpers.RegisterTenant(t, ts)

	body := map[string]interface{}{
		"current_password": "super_password123",
		"new_password":     "brand_new_password456",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/change-password", tenant.Token, body)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	// Old password stops working, new one does.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "",
		map[string]interface{}{"email": tenant.Email, "password": "super_password123"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	helpers.Login(t, ts, tenant.Email, "brand_new_password456")
}

func TestProtectedRoute_NoToken(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/candidates", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
