package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "chat", cfg.Completion.Style)
	assert.Equal(t, 60, cfg.Completion.TimeoutSeconds)
	assert.Equal(t, 30, cfg.Embedding.TimeoutSeconds)
	assert.Equal(t, 0.7, cfg.RecurringThreshold)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)

	assert.False(t, cfg.Completion.Configured())
	assert.False(t, cfg.RedisConfigured())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("COMPLETION_ENDPOINT", "https://inference.example.com")
	t.Setenv("COMPLETION_TOKEN", "secret")
	t.Setenv("COMPLETION_STYLE", "text")
	t.Setenv("RECURRING_THEME_THRESHOLD", "0.85")
	t.Setenv("REDIS_HOST", "redis.example.com")
	t.Setenv("REDIS_PASSWORD", "hunter2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://app.example.com")

	cfg := Load()

	assert.True(t, cfg.Completion.Configured())
	assert.Equal(t, "text", cfg.Completion.Style)
	assert.Equal(t, 0.85, cfg.RecurringThreshold)
	assert.True(t, cfg.RedisConfigured())
	assert.Equal(t, []string{"http://localhost:5173", "https://app.example.com"}, cfg.CORSAllowedOrigins)
}
