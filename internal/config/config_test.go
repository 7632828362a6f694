package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripToHostname(t *testing.T) {
	assert.Equal(t, "api.sanctuary.app", stripToHostname("https://api.sanctuary.app"))
	assert.Equal(t, "api.sanctuary.app", stripToHostname("http://api.sanctuary.app/path"))
	assert.Equal(t, "localhost", stripToHostname("http://localhost:8080"))
	assert.Equal(t, "example.com", stripToHostname("example.com"))
}

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t, []string{"https://a.app", "https://b.app"}, parseOrigins("https://a.app, https://b.app"))
	assert.Equal(t, []string{"https://a.app"}, parseOrigins(" https://a.app ,,"))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("FRONTEND_URL", "")
	t.Setenv("LOVE_START_DATE", "")

	cfg := Load()
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.AllowedHost)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "2024-02-14", cfg.LoveStartDate.Format("2006-01-02"))
}

func TestLoadProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("HOST", "https://api.sanctuary.app")
	t.Setenv("ALLOWED_ORIGINS", "https://sanctuary.app,https://valentine.sanctuary.app")
	t.Setenv("LOVE_START_DATE", "2023-06-01")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "api.sanctuary.app", cfg.AllowedHost)
	assert.Equal(t, []string{"https://sanctuary.app", "https://valentine.sanctuary.app"}, cfg.AllowedOrigins)
	assert.Equal(t, "2023-06-01", cfg.LoveStartDate.Format("2006-01-02"))
}
