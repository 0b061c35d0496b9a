package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carepulse/carepulse-api/internal/config"
)

func testManager(ttl time.Duration) *JWTManager {
	return NewJWTManager(config.JWTConfig{
		Secret:     "test-secret-test-secret-test-sec",
		SessionTTL: ttl,
		Issuer:     "carepulse-test",
	})
}

func TestGenerateAndValidateSession(t *testing.T) {
	m := testManager(time.Hour)

	token, expiresAt, err := m.GenerateSession()
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	assert.NoError(t, m.ValidateSession(token))
}

func TestValidateTamperedToken(t *testing.T) {
	m := testManager(time.Hour)

	token, _, err := m.GenerateSession()
	require.NoError(t, err)

	assert.ErrorIs(t, m.ValidateSession(token+"x"), ErrTokenInvalid)
}

func TestValidateWrongSecret(t *testing.T) {
	token, _, err := testManager(time.Hour).GenerateSession()
	require.NoError(t, err)

	other := NewJWTManager(config.JWTConfig{
		Secret:     "another-secret-another-secret-32",
		SessionTTL: time.Hour,
		Issuer:     "carepulse-test",
	})
	assert.ErrorIs(t, other.ValidateSession(token), ErrTokenInvalid)
}

func TestValidateExpiredSession(t *testing.T) {
	m := testManager(-time.Minute)

	token, _, err := m.GenerateSession()
	require.NoError(t, err)

	assert.ErrorIs(t, m.ValidateSession(token), ErrTokenExpired)
}

func TestValidateWrongIssuer(t *testing.T) {
	other := NewJWTManager(config.JWTConfig{
		Secret:     "test-secret-test-secret-test-sec",
		SessionTTL: time.Hour,
		Issuer:     "someone-else",
	})
	token, _, err := other.GenerateSession()
	require.NoError(t, err)

	assert.ErrorIs(t, testManager(time.Hour).ValidateSession(token), ErrTokenInvalid)
}
