package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glucocare/glucocare-api/internal/model"
)

func testConfig() Config {
	return Config{
		Secret:             "test-secret",
		RefreshSecret:      "test-refresh-secret",
		ExpiryHours:        1,
		RefreshExpiryHours: 24,
	}
}

func testUser() *model.User {
	return &model.User{
		Base:  model.Base{ID: uuid.New()},
		Role:  model.RolePatient,
		Email: "patient@example.com",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(testConfig())
	user := testUser()

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, model.RolePatient, claims.Role)
}

func TestRefreshTokenUsesSeparateSecret(t *testing.T) {
	svc := NewJWTService(testConfig())
	user := testUser()

	refresh, err := svc.GenerateRefreshToken(user)
	require.NoError(t, err)

	// A refresh token must not pass as an access token.
	_, err = svc.ValidateToken(refresh)
	require.Error(t, err)

	claims, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc := NewJWTService(testConfig())
	other := NewJWTService(Config{
		Secret:             "different-secret",
		RefreshSecret:      "different-refresh",
		ExpiryHours:        1,
		RefreshExpiryHours: 24,
	})

	token, err := other.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	require.Error(t, err)
}
