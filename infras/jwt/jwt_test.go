package jwt

import (
	"context"
	"testing"
	"time"

	"solireserve/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = testSecret
	cfg.JWT.Issuer = "solireserve-auth"
	cfg.JWT.Audience = "solireserve-api"

	return cfg
}

func sign(t *testing.T, method jwt.SigningMethod, secret string, claims Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func validClaims() Claims {
	now := time.Now()

	return Claims{
		UserID: "user-1",
		Email:  "agent@example.org",
		Role:   "gestionnaire",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "solireserve-auth",
			Audience:  jwt.ClaimStrings{"solireserve-api"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			ID:        "token-1",
		},
	}
}

func TestValidateToken(t *testing.T) {
	service := New(testConfig())

	t.Run("valid token", func(t *testing.T) {
		claims, err := service.ValidateToken(context.Background(), sign(t, jwt.SigningMethodHS256, testSecret, validClaims()))

		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "gestionnaire", claims.Role)
		assert.Equal(t, "token-1", claims.ID)
	})

	t.Run("subject used when user id is missing", func(t *testing.T) {
		c := validClaims()
		c.UserID = ""
		c.Subject = "user-2"

		claims, err := service.ValidateToken(context.Background(), sign(t, jwt.SigningMethodHS256, testSecret, c))

		require.NoError(t, err)
		assert.Equal(t, "user-2", claims.UserID)
	})

	t.Run("expired token", func(t *testing.T) {
		c := validClaims()
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

		_, err := service.ValidateToken(context.Background(), sign(t, jwt.SigningMethodHS256, testSecret, c))

		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := service.ValidateToken(context.Background(), sign(t, jwt.SigningMethodHS256, "other", validClaims()))

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		c := validClaims()
		c.Issuer = "someone-else"

		_, err := service.ValidateToken(context.Background(), sign(t, jwt.SigningMethodHS256, testSecret, c))

		assert.ErrorIs(t, err, ErrInvalidClaim)
	})

	t.Run("wrong audience", func(t *testing.T) {
		c := validClaims()
		c.Audience = jwt.ClaimStrings{"another-api"}

		_, err := service.ValidateToken(context.Background(), sign(t, jwt.SigningMethodHS256, testSecret, c))

		assert.ErrorIs(t, err, ErrInvalidClaim)
	})

	t.Run("missing role", func(t *testing.T) {
		c := validClaims()
		c.Role = ""

		_, err := service.ValidateToken(context.Background(), sign(t, jwt.SigningMethodHS256, testSecret, c))

		assert.ErrorIs(t, err, ErrInvalidClaim)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := service.ValidateToken(context.Background(), "not-a-token")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := ExtractTokenFromHeader("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)
}
