package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashYVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secreta123")
	require.NoError(t, err)
	require.NotEqual(t, "secreta123", hash)

	assert.True(t, VerifyPassword(hash, "secreta123"))
	assert.False(t, VerifyPassword(hash, "otra"))
	assert.False(t, VerifyPassword("", "secreta123"))
}
