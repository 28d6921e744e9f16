package models

import (
	"github.com/nahidhasan98/script-drift/internal/catalog"
	"github.com/nahidhasan98/script-drift/internal/report"
	"github.com/nahidhasan98/script-drift/internal/whatsapp"
)

// CompareRequest asks for one comparison: either a catalog script by name or
// an explicit baseline and live locator
type CompareRequest struct {
	Script   string `json:"script,omitempty"`
	Baseline string `json:"baseline,omitempty"`
	Live     string `json:"live,omitempty"`
	Notify   bool   `json:"notify,omitempty"`
}

// CompareResponse is a change report plus its previews and delivery outcome
type CompareResponse struct {
	Report      *report.ChangeReport `json:"report"`
	Previews    report.Previews      `json:"previews"`
	Notified    bool                 `json:"notified"`
	NotifyError string               `json:"notify_error,omitempty"`
}

// NewCompareResponse converts a service result
func NewCompareResponse(res *report.Result) *CompareResponse {
	resp := &CompareResponse{
		Report:   res.Report,
		Previews: res.Report.Previews(),
		Notified: res.Notified,
	}
	if res.NotifyError != nil {
		resp.NotifyError = res.NotifyError.Error()
	}
	return resp
}

// ScriptsResponse lists the catalog
type ScriptsResponse struct {
	Scripts []catalog.Script `json:"scripts"`
}

// WebhookResponse reports what a push triggered
type WebhookResponse struct {
	Status     string             `json:"status"`
	Repository string             `json:"repository"`
	Checked    int                `json:"checked"`
	Reports    []*CompareResponse `json:"reports"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string           `json:"status"`
	Scripts    int              `json:"scripts"`
	Summarizer string           `json:"summarizer"`
	WhatsApp   *whatsapp.Status `json:"whatsapp,omitempty"`
	Timestamp  int64            `json:"timestamp"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
