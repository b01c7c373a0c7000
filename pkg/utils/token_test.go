package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("66cf2b1e8f1b2c3d4e5f6a7b", "test-secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ParseToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "66cf2b1e8f1b2c3d4e5f6a7b", userID)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("66cf2b1e8f1b2c3d4e5f6a7b", "test-secret")
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not.a.jwt", "test-secret")
	assert.Error(t, err)
}
