package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("CLIENT_URL", "")
	t.Setenv("FRONTEND_URL", "")
	t.Setenv("SERVER_URL", "https://api.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://api.example.com", cfg.ServerURL)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, int64(5*1024*1024), cfg.Media.MaxFileBytes)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.NotContains(t, cfg.String(), "s3cret")
}

func TestLoad_MergesOrigins(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example/")
	t.Setenv("CLIENT_URL", "https://a.example")
	t.Setenv("FRONTEND_URL", "https://c.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example", "https://c.example"}, cfg.AllowedOrigins)
}

func TestValidate_MailTransport(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MAIL_TRANSPORT", "smtp")
	t.Setenv("SMTP_HOST", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_HOST")

	t.Setenv("MAIL_TRANSPORT", "pigeon")
	_, err = Load()
	require.Error(t, err)
}

func TestIsProduction(t *testing.T) {
	cfg := &Config{Env: "production"}
	assert.True(t, cfg.IsProduction())
	cfg.Env = "development"
	assert.False(t, cfg.IsProduction())
}
