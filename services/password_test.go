package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyPassword(t *testing.T) {
	salt, hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.Len(t, hash, 32)
	require.Len(t, salt, 16)

	t.Run("OriginalPassword", func(t *testing.T) {
		assert.True(t, VerifyPassword("correct horse battery staple", salt, hash))
	})

	t.Run("WrongPassword", func(t *testing.T) {
		assert.False(t, VerifyPassword("incorrect horse battery staple", salt, hash))
	})

	t.Run("WrongSalt", func(t *testing.T) {
		otherSalt, _, err := HashPassword("correct horse battery staple")
		require.NoError(t, err)
		assert.False(t, VerifyPassword("correct horse battery staple", otherSalt, hash))
	})

	t.Run("EmptyStoredMaterial", func(t *testing.T) {
		assert.False(t, VerifyPassword("anything", nil, hash))
		assert.False(t, VerifyPassword("anything", salt, nil))
	})
}

func TestHashPasswordSaltsAreUnique(t *testing.T) {
	salt1, hash1, err := HashPassword("password123")
	require.NoError(t, err)
	salt2, hash2, err := HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)
}
