package auth

import (
	"testing"

	"evervoice_backend/internal/config"
	"evervoice_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfig(ttlMinutes int) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = ttlMinutes
	cfg.JWT.RefreshTTL = 24
	config.AppConfig = cfg
}

func TestGenerateAndParseToken(t *testing.T) {
	setTestConfig(60)

	user := &models.User{Email: "kim@example.com", Role: models.UserRoleUser}
	user.ID = "user-1"

	token, err := GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "kim@example.com", claims.Email)
	assert.Equal(t, models.UserRoleUser, claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestParseToken_Expired(t *testing.T) {
	setTestConfig(-1)

	user := &models.User{}
	user.ID = "user-1"
	token, err := GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestParseToken_Garbage(t *testing.T) {
	setTestConfig(60)

	_, err := ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-pass", hash)
	assert.True(t, CheckPasswordHash("secret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("longenough"))
	assert.Error(t, ValidatePassword("short"))
}
