package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hireflow_backend/internal/auth"
	"hireflow_backend/internal/config"
	"hireflow_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "middleware_test_secret_key"
	cfg.JWT.TTL = 15
	config.AppConfig = cfg

	router := gin.New()
	protected := router.Group("/protected")
	protected.Use(AuthMiddleware())
	{
		protected.GET("/me", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"user_id":    GetUserID(c),
				"company_id": GetCompanyID(c),
			})
		})

		hrOnly := protected.Group("/hr")
		hrOnly.Use(RequireRoles(models.UserRoleAdmin, models.UserRoleHR))
		hrOnly.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
	}
	return router
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router := setupAuthTest(t)

	token, err := auth.GenerateToken("user-42", "company-7", "hr")
	require.NoError(t, err)

	w := doRequest(router, "/protected/me", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-42")
	assert.Contains(t, w.Body.String(), "company-7")
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := setupAuthTest(t)

	w := doRequest(router, "/protected/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := setupAuthTest(t)

	w := doRequest(router, "/protected/me", "Token abcdef")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	router := setupAuthTest(t)

	w := doRequest(router, "/protected/me", "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles_Allowed(t *testing.T) {
	router := setupAuthTest(t)

	token, err := auth.GenerateToken("user-1", "company-1", "hr")
	require.NoError(t, err)

	w := doRequest(router, "/protected/hr", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoles_Denied(t *testing.T) {
	router := setupAuthTest(t)

	token, err := auth.GenerateToken("user-1", "company-1", "employee")
	require.NoError(t, err)

	w := doRequest(router, "/protected/hr", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
