package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePasswordStrength(t *testing.T) {
	for _, password := range []string{"password", "Test123!@#", "correct horse battery"} {
		assert.NoError(t, ValidatePasswordStrength(password), password)
	}
	for _, password := range []string{"", "Test1!", "1234567"} {
		assert.ErrorIs(t, ValidatePasswordStrength(password), ErrPasswordTooShort, password)
	}
}

func TestHashPassword(t *testing.T) {
	password := "testpassword123"

	hash, err := HashPassword(password)
	require.NoError(t, err)
	assert.NotEqual(t, password, hash)

	t.Run("correct password", func(t *testing.T) {
		assert.True(t, VerifyPassword(hash, password))
	})

	t.Run("wrong password", func(t *testing.T) {
		assert.False(t, VerifyPassword(hash, "wrongpassword"))
	})

	t.Run("different hash each time", func(t *testing.T) {
		hash2, err := HashPassword(password)
		require.NoError(t, err)
		assert.NotEqual(t, hash, hash2)
		assert.True(t, VerifyPassword(hash2, password))
	})

	t.Run("garbage hash", func(t *testing.T) {
		assert.False(t, VerifyPassword("not-a-bcrypt-hash", password))
	})
}
