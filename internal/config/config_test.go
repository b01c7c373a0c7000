package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "PORT", "ALLOWED_ORIGINS", "FRONTEND_URL", "FRONTEND_URL_2", "SMTP_PORT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.NotEmpty(t, cfg.MongoURI)
	assert.NotEmpty(t, cfg.AllowedOrigins)
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "Production")
	t.Setenv("PORT", "8080")
	t.Setenv("ALLOWED_ORIGINS", "https://meetzy.app, https://admin.meetzy.app")
	t.Setenv("SMTP_PORT", "2525")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"https://meetzy.app", "https://admin.meetzy.app"}, cfg.AllowedOrigins)
	assert.Equal(t, 2525, cfg.SMTPPort)
}

func TestLoadBadSMTPPortFallsBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")
	cfg := Load()
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t, []string{"a", "b"}, parseOrigins("a, b,"))
}
