package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("library-card-42")
	require.NoError(t, err)
	assert.NotEqual(t, "library-card-42", hash)

	assert.NoError(t, VerifyPassword(hash, "library-card-42"))
	assert.Error(t, VerifyPassword(hash, "library-card-43"))
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
