package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahidhasan98/script-drift/internal/errors"
	"github.com/nahidhasan98/script-drift/internal/models"
)

func TestValidateCompareRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     *models.CompareRequest
		wantErr bool
	}{
		{name: "nil", req: nil, wantErr: true},
		{name: "empty", req: &models.CompareRequest{}, wantErr: true},
		{name: "script", req: &models.CompareRequest{Script: " Sepsis Cohort "}},
		{name: "bad script name", req: &models.CompareRequest{Script: "../etc/passwd"}, wantErr: true},
		{name: "both forms", req: &models.CompareRequest{Script: "Sepsis Cohort", Baseline: "https://a/b"}, wantErr: true},
		{name: "pair", req: &models.CompareRequest{Baseline: "https://example.com/a.sql", Live: "github://o/r/dir/b.sql@main"}},
		{name: "missing live", req: &models.CompareRequest{Baseline: "https://example.com/a.sql"}, wantErr: true},
		{name: "file locator", req: &models.CompareRequest{Baseline: "file:///etc/passwd", Live: "https://example.com/a.sql"}, wantErr: true},
		{name: "bare path", req: &models.CompareRequest{Baseline: "a.sql", Live: "https://example.com/a.sql"}, wantErr: true},
		{name: "bad github", req: &models.CompareRequest{Baseline: "github://o/r", Live: "https://example.com/a.sql"}, wantErr: true},
		{name: "too long", req: &models.CompareRequest{Baseline: "https://example.com/" + strings.Repeat("a", MaxLocatorLength), Live: "https://example.com/a.sql"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCompareRequest(tt.req)
			if tt.wantErr {
				require.NotNil(t, err)
				return
			}
			assert.Nil(t, err)
		})
	}
}

func TestValidateCompareRequest_Trims(t *testing.T) {
	req := &models.CompareRequest{Script: "  Sepsis Cohort\n"}
	require.Nil(t, New().ValidateCompareRequest(req))
	assert.Equal(t, "Sepsis Cohort", req.Script)
}

func TestIsValidJID(t *testing.T) {
	v := New()

	assert.True(t, v.IsValidJID("8801712345678@s.whatsapp.net"))
	assert.True(t, v.IsValidJID("120363025246125486@g.us"))
	assert.True(t, v.IsValidJID("8801712345678-1609459200@g.us"))
	assert.False(t, v.IsValidJID("12345@s.whatsapp.net"))
	assert.False(t, v.IsValidJID("someone@lid"))
	assert.False(t, v.IsValidJID(""))
}

func TestValidateRecipient(t *testing.T) {
	err := New().ValidateRecipient("nobody")
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrCodeInvalidJID, err.Code)
	assert.Nil(t, New().ValidateRecipient("120363025246125486@g.us"))
}
