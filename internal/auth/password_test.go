package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("pass1234", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "pass1234", hash)

	assert.NoError(t, ComparePassword(hash, "pass1234"))
	assert.Error(t, ComparePassword(hash, "wrong-password"))
}

func TestGenerateResetToken(t *testing.T) {
	plain, digest, err := GenerateResetToken()
	require.NoError(t, err)
	require.NotEmpty(t, plain)
	require.NotEmpty(t, digest)

	// only the digest is stored; the mailed plaintext must hash back to it
	assert.NotEqual(t, plain, digest)
	assert.Equal(t, digest, HashResetToken(plain))

	plain2, digest2, err := GenerateResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, plain, plain2)
	assert.NotEqual(t, digest, digest2)
}
