package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, BackendNone, cfg.Summarizer.Backend)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.False(t, cfg.Diff.Hints)
	assert.Equal(t, 0.75, cfg.Diff.HintCutoff)
	assert.Equal(t, 5000, cfg.Fetch.MaxLines)
	assert.False(t, cfg.Security.TrustProxy)
	assert.False(t, cfg.NotificationsEnabled())
	assert.Empty(t, cfg.Catalog.File)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("API_KEYS", " first-secret-key, ,second-secret-key ")
	t.Setenv("SUMMARIZER_BACKEND", "GenAI")
	t.Setenv("SUMMARIZER_API_KEY", "k")
	t.Setenv("SUMMARIZER_TIMEOUT", "5s")
	t.Setenv("DIFF_HINTS", "true")
	t.Setenv("WHATSAPP_ENABLED", "1")
	t.Setenv("WHATSAPP_RECIPIENT", "120363025246125486@g.us")
	t.Setenv("RATE_LIMIT", "2.5")
	t.Setenv("FETCH_MAX_LINES", "200")
	t.Setenv("DIFF_HINT_CUTOFF", "0.5")
	t.Setenv("TRUST_PROXY", "true")

	cfg := FromEnv()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"first-secret-key", "second-secret-key"}, cfg.Security.APIKeys)
	assert.Equal(t, BackendGenAI, cfg.Summarizer.Backend)
	assert.Equal(t, 5*time.Second, cfg.Summarizer.Timeout)
	assert.Equal(t, 2.5, cfg.Security.RateLimit)
	assert.True(t, cfg.Diff.Hints)
	assert.Equal(t, 0.5, cfg.Diff.HintCutoff)
	assert.Equal(t, 200, cfg.Fetch.MaxLines)
	assert.True(t, cfg.Security.TrustProxy)
	assert.True(t, cfg.NotificationsEnabled())
}

func TestFromEnv_BadValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")
	t.Setenv("FETCH_TIMEOUT", "soon")
	t.Setenv("DIFF_HINTS", "maybe")

	cfg := FromEnv()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.False(t, cfg.Diff.Hints)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := FromEnv()
		cfg.Security.APIKeys = []string{"a-long-enough-key"}
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 0 }},
		{"no keys", func(c *Config) { c.Security.APIKeys = nil }},
		{"short key", func(c *Config) { c.Security.APIKeys = []string{"short"} }},
		{"default key", func(c *Config) { c.Security.APIKeys = []string{"default-api-key"} }},
		{"rate", func(c *Config) { c.Security.RateLimit = 0 }},
		{"fetch timeout", func(c *Config) { c.Fetch.Timeout = 0 }},
		{"max lines", func(c *Config) { c.Fetch.MaxLines = 0 }},
		{"hint cutoff", func(c *Config) { c.Diff.HintCutoff = 1.5 }},
		{"backend", func(c *Config) { c.Summarizer.Backend = "bart" }},
		{"genai without key", func(c *Config) { c.Summarizer.Backend = BackendGenAI }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestAddress(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	assert.Equal(t, "127.0.0.1:8080", s.Address())
}
