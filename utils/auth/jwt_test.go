package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTManager(expiry time.Duration) *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret: "test-secret-key-for-unit-tests",
		Expiry: expiry,
		Issuer: "cms-api-test",
	})
}

func TestSessionTokenRoundTrip(t *testing.T) {
	manager := testJWTManager(time.Hour)

	token, jti, err := manager.GenerateSessionToken(42, "admin@example.com", "SUPER_ADMIN")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, jti)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "SUPER_ADMIN", claims.Role)
	assert.Equal(t, jti, claims.ID)
	assert.Equal(t, "cms-api-test", claims.Issuer)
}

func TestSessionTokenJTIUnique(t *testing.T) {
	manager := testJWTManager(time.Hour)

	_, jti1, err := manager.GenerateSessionToken(1, "a@example.com", "SUPER_ADMIN")
	require.NoError(t, err)
	_, jti2, err := manager.GenerateSessionToken(1, "a@example.com", "SUPER_ADMIN")
	require.NoError(t, err)

	assert.NotEqual(t, jti1, jti2)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _, err := testJWTManager(time.Hour).GenerateSessionToken(1, "a@example.com", "SUPER_ADMIN")
	require.NoError(t, err)

	other := NewJWTManager(JWTConfig{Secret: "a-different-secret", Expiry: time.Hour})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	manager := testJWTManager(-time.Minute)

	token, _, err := manager.GenerateSessionToken(1, "a@example.com", "SUPER_ADMIN")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := testJWTManager(time.Hour).ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
