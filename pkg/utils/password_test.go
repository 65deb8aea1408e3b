package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	h, err := HashPassword("test123")
	require.NoError(t, err)
	assert.NotEqual(t, "test123", h)
	assert.True(t, CheckPassword("test123", h))
	assert.False(t, CheckPassword("wrong", h))
}
