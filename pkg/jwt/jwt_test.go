package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	manager := NewManager("test-secret")

	token, err := manager.GenerateAccessToken("64a1f0c2e4b0a1b2c3d4e5f6")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64a1f0c2e4b0a1b2c3d4e5f6", claims.UserID)
	assert.False(t, claims.ForgotPassword)
}

func TestGenerateResetTokenCarriesMarker(t *testing.T) {
	manager := NewManager("test-secret")

	token, err := manager.GenerateResetToken("64a1f0c2e4b0a1b2c3d4e5f6")
	require.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.ForgotPassword)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a").GenerateAccessToken("64a1f0c2e4b0a1b2c3d4e5f6")
	require.NoError(t, err)

	_, err = NewManager("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	manager := NewManager("test-secret")

	_, err := manager.ValidateToken("not.a.token")
	assert.Error(t, err)

	_, err = manager.ValidateToken("")
	assert.Error(t, err)
}
