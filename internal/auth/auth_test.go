package auth

import (
	"testing"

	"cmms-backend/internal/config"
	"cmms-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-not-for-production"
	cfg.JWT.ExpirationHours = 24
	cfg.JWT.Issuer = "cmms-backend"
	return cfg
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("technician123")
	require.NoError(t, err)
	assert.NotEqual(t, "technician123", hash)

	assert.True(t, VerifyPassword(hash, "technician123"))
	assert.False(t, VerifyPassword(hash, "wrong-password"))
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewJWTManager(testConfig())

	user := &models.User{
		ID:       7,
		Email:    "tech@cmms.local",
		Role:     models.RoleTechnician,
		IsActive: true,
	}

	token, err := manager.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "tech@cmms.local", claims.Email)
	assert.Equal(t, models.RoleTechnician, claims.Role)
	assert.True(t, claims.IsActive)
	assert.Equal(t, "cmms-backend", claims.Issuer)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	manager := NewJWTManager(testConfig())

	_, err := manager.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager(testConfig())

	other := testConfig()
	other.JWT.Secret = "some-other-secret"
	forged, err := NewJWTManager(other).GenerateToken(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = manager.ValidateToken(forged)
	assert.Error(t, err)
}
