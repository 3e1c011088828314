package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seferogluemre/LibraryManagement-sub001/app/config"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = &config.Config{
		AppSlug:    "library-management-test",
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
	}
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret!", hash)

	assert.True(t, CheckPasswordHash("s3cret!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("s3cret!", "not-a-hash"))
}

func TestGenerateTokenPair(t *testing.T) {
	setTestConfig(t)

	access, refresh, expiresAt, err := GenerateTokenPair("user-1", "admin@example.com")
	require.NoError(t, err)
	require.NotEqual(t, access, refresh)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	ac, err := ValidateJWT(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", ac.UserID)
	assert.Equal(t, "admin@example.com", ac.Email)
	assert.Equal(t, "access", ac.TokenType)
	assert.Equal(t, "library-management-test", ac.Issuer)

	rc, err := ValidateJWT(refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", rc.TokenType)
	// refresh must outlive access so a session can be rotated
	assert.True(t, rc.ExpiresAt.After(ac.ExpiresAt.Time))
}

func TestValidateJWTRejectsTampering(t *testing.T) {
	setTestConfig(t)

	access, _, _, err := GenerateTokenPair("user-1", "admin@example.com")
	require.NoError(t, err)

	_, err = ValidateJWT(access + "x")
	assert.Error(t, err)

	_, err = ValidateJWT("not.a.jwt")
	assert.Error(t, err)

	config.AppConfig.JWTSecret = "rotated-secret"
	_, err = ValidateJWT(access)
	assert.Error(t, err)
}

func TestValidateJWTRejectsExpired(t *testing.T) {
	setTestConfig(t)

	claims := JWTClaims{
		UserID:    "user-1",
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.AppConfig.JWTSecret))
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
