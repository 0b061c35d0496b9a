package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_PASSKEY", "123456")
	t.Setenv("JWT_SECRET", "test-secret-test-secret-test-sec")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "carepulse-api", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, 8*time.Hour, cfg.JWT.SessionTTL)
	assert.Equal(t, float64(50), cfg.RateLimit.RequestsPerSecond)
}

func TestLoadRequiresPasskey(t *testing.T) {
	t.Setenv("ADMIN_PASSKEY", "")
	t.Setenv("JWT_SECRET", "test-secret-test-secret-test-sec")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_PASSKEY is required")
}

func TestLoadRejectsNonNumericPasskey(t *testing.T) {
	t.Setenv("ADMIN_PASSKEY", "abc123")
	t.Setenv("JWT_SECRET", "test-secret-test-secret-test-sec")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "6-digit numeric")
}

func TestLoadRejectsShortPasskey(t *testing.T) {
	t.Setenv("ADMIN_PASSKEY", "1234")
	t.Setenv("JWT_SECRET", "test-secret-test-secret-test-sec")

	_, err := Load()
	require.Error(t, err)
}

func TestProductionRequiresLongSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("ADMIN_PASSKEY", "123456")
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("DB_PASSWORD", "pw")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestProductionRejectsDisabledSSL(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("ADMIN_PASSKEY", "123456")
	t.Setenv("JWT_SECRET", "test-secret-test-secret-test-sec")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_SSLMODE", "disable")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_SSLMODE")
}

func TestNotifyRequiresCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("NOTIFY_ENABLED", "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOTIFY_CREDENTIALS_FILE")
}

func TestDSN(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "pw")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
	assert.Contains(t, cfg.Database.DSN(), "sslmode=require")
}

func TestEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, float64(5), cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}
