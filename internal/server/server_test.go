package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahidhasan98/script-drift/internal/catalog"
	"github.com/nahidhasan98/script-drift/internal/config"
	"github.com/nahidhasan98/script-drift/internal/document"
	"github.com/nahidhasan98/script-drift/internal/handlers"
	"github.com/nahidhasan98/script-drift/internal/logger"
	"github.com/nahidhasan98/script-drift/internal/report"
	"github.com/nahidhasan98/script-drift/internal/summary"
)

const apiKey = "a-long-enough-key"

type emptySource struct{}

func (emptySource) Fetch(_ context.Context, locator string) (*document.TextDocument, error) {
	return document.New(locator, "SELECT 1;"), nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.FromEnv()
	cfg.Security.APIKeys = []string{apiKey}
	cfg.Security.RateLimit = 100
	cfg.Security.RateLimitBurst = 100
	require.NoError(t, cfg.Validate())

	log := logger.Nop()
	builder := report.NewBuilder(summary.New(summary.Disabled(), 0, log), log)
	svc := report.NewService(catalog.Default(), emptySource{}, builder, nil, log)
	h := handlers.New(svc, log, handlers.Options{Summarizer: config.BackendNone})

	ts := httptest.NewServer(New(cfg, h, log).Routes())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, key, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRoutes(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		key    string
		body   string
		status int
	}{
		{"health is public", http.MethodGet, "/health", "", "", http.StatusOK},
		{"scripts needs key", http.MethodGet, "/scripts", "", "", http.StatusUnauthorized},
		{"scripts", http.MethodGet, "/scripts", apiKey, "", http.StatusOK},
		{"compare", http.MethodPost, "/compare", apiKey, `{"script":"Cohort Script"}`, http.StatusOK},
		{"compare wrong method", http.MethodGet, "/compare", apiKey, "", http.StatusMethodNotAllowed},
		{"webhook is public", http.MethodPost, "/webhook/gitea", "", `{"repository":{"full_name":"o/r"}}`, http.StatusOK},
		{"unknown", http.MethodGet, "/send", apiKey, "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, ts.URL+tt.path, tt.key, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRoutes_SecurityHeaders(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/scripts", apiKey, "")
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get("Cache-Control"))
}
