package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hireflow_backend/internal/config"
)

func setupTestConfig(t *testing.T) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test_secret_key_for_jwt_tests"
	cfg.JWT.TTL = 15
	cfg.JWT.RefreshTTL = 168
	config.AppConfig = cfg
}

func TestGenerateAndParseToken(t *testing.T) {
	setupTestConfig(t)

	token, err := GenerateToken("user-1", "company-1", "hr")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "company-1", claims.CompanyID)
	assert.Equal(t, "hr", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseToken_RejectsTampered(t *testing.T) {
	setupTestConfig(t)

	token, err := GenerateToken("user-1", "company-1", "hr")
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)
}

func TestParseToken_RejectsWrongSecret(t *testing.T) {
	setupTestConfig(t)

	claims := &Claims{
		UserID:    "user-1",
		CompanyID: "company-1",
		Role:      "hr",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := foreign.SignedString([]byte("some_other_secret"))
	require.NoError(t, err)

	_, err = ParseToken(tokenStr)
	assert.Error(t, err)
}

func TestParseToken_RejectsNoneAlgorithm(t *testing.T) {
	setupTestConfig(t)

	claims := &Claims{UserID: "user-1"}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenStr, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(tokenStr)
	assert.Error(t, err)
}

func TestParseToken_RejectsExpired(t *testing.T) {
	setupTestConfig(t)

	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := expired.SignedString([]byte("test_secret_key_for_jwt_tests"))
	require.NoError(t, err)

	_, err = ParseToken(tokenStr)
	assert.Error(t, err)
}
