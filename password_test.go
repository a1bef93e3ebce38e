package auth_test

import (
	"testing"

	auth "github.com/goliatone/go-auth-tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("hashes a non-empty password", func(t *testing.T) {
		hash, err := auth.HashPassword("pw123-secret")
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotEqual(t, "pw123-secret", hash)
	})

	t.Run("rejects an empty password", func(t *testing.T) {
		_, err := auth.HashPassword("")
		assert.ErrorIs(t, err, auth.ErrNoEmptyString)
	})

	t.Run("two hashes of the same password differ", func(t *testing.T) {
		first, err := auth.HashPassword("pw123-secret")
		require.NoError(t, err)
		second, err := auth.HashPassword("pw123-secret")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestComparePasswordAndHash(t *testing.T) {
	hash, err := auth.HashPassword("pw123-secret")
	require.NoError(t, err)

	t.Run("matches the original password", func(t *testing.T) {
		assert.NoError(t, auth.ComparePasswordAndHash("pw123-secret", hash))
	})

	t.Run("rejects a wrong password with the credentials error", func(t *testing.T) {
		err := auth.ComparePasswordAndHash("not-the-password", hash)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("rejects garbage hashes", func(t *testing.T) {
		err := auth.ComparePasswordAndHash("pw123-secret", "not-a-bcrypt-hash")
		assert.Error(t, err)
	})
}

func TestNewVerifyCode(t *testing.T) {
	first := auth.NewVerifyCode()
	second := auth.NewVerifyCode()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
