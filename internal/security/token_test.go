package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-bytes-long!"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-1", "session-1", false, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "session-1", claims.SessionID)
	assert.False(t, claims.Admin)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "session-1", claims.ID)
}

func TestTokenAdminFlag(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-1", "session-1", true, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.True(t, claims.Admin)
}

func TestTokenExpiry(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-1", "session-1", false, 720*time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 720*time.Hour, ttl)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-1", "session-1", false, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-1", "session-1", false, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "another-secret-that-is-not-right")
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := ParseToken("not.a.jwt", testSecret)
	assert.Error(t, err)
}

func TestHashTokenStable(t *testing.T) {
	h1 := HashToken("abc")
	h2 := HashToken("abc")
	h3 := HashToken("abd")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 32)
}
