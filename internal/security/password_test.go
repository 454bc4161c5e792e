package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(hash), "$argon2id$v=19$"))

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	h1, err := HashPassword("same input")
	require.NoError(t, err)
	h2, err := HashPassword("same input")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	_, err := VerifyPassword("whatever", []byte("not-a-hash"))
	assert.Error(t, err)

	_, err = VerifyPassword("whatever", []byte("$bcrypt$x$y$z$w"))
	assert.Error(t, err)
}

func TestGenerateOpaqueToken(t *testing.T) {
	raw, hash, err := GenerateOpaqueToken(32)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.Equal(t, HashToken(raw), hash)

	raw2, _, err := GenerateOpaqueToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, raw, raw2)
}
