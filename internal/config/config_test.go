package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 12*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingSecret)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ACCESS_TOKEN_SECRET", "a")
	t.Setenv("REFRESH_TOKEN_SECRET", "r")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Log.Pretty)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DB_NAME=from_file\nSENDER=CHURCH\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("DB_NAME")
		os.Unsetenv("SENDER")
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from_file", cfg.Database.Name)
	assert.Equal(t, "CHURCH", cfg.SMS.Sender)
	assert.Contains(t, cfg.Database.DSN(), "dbname=from_file")
}
