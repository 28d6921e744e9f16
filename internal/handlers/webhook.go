package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nahidhasan98/script-drift/internal/errors"
	"github.com/nahidhasan98/script-drift/internal/models"
)

// WebhookProvider represents different webhook providers
type WebhookProvider string

const (
	ProviderGitea  WebhookProvider = "Gitea"
	ProviderGitHub WebhookProvider = "GitHub"
)

// WebhookConfig holds configuration for webhook processing
type WebhookConfig struct {
	Provider        WebhookProvider
	SignatureHeader string
	EventHeader     string
	Secret          string
	SignaturePrefix string // e.g., "sha256=" for GitHub
}

// handleWebhook verifies a push event and re-checks every catalog script
// watching one of the changed files. Reports are always sent.
func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request, config WebhookConfig, parsePayload func([]byte) (models.PushEvent, error)) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err != nil {
		h.writeAppError(w, errors.InvalidRequest("Failed to read request body: "+err.Error()))
		return
	}

	if appErr := h.verifyWebhookSignature(body, r.Header.Get(config.SignatureHeader), config); appErr != nil {
		h.writeAppError(w, appErr)
		return
	}

	event := r.Header.Get(config.EventHeader)
	if event != "" && event != "push" {
		h.log.Infof("%s webhook event %q ignored", config.Provider, event)
		h.writeJSON(w, &models.WebhookResponse{Status: "ignored"}, http.StatusOK)
		return
	}

	payload, err := parsePayload(body)
	if err != nil {
		h.writeAppError(w, errors.InvalidRequest("Invalid webhook payload: "+err.Error()))
		return
	}

	repo := payload.RepositoryName()
	if repo == "" {
		h.writeAppError(w, errors.ValidationError("Webhook payload has no repository"))
		return
	}

	files := payload.ChangedFiles()
	h.log.With("provider", config.Provider).
		With("repository", repo).
		Infof("Push to %s with %d commit(s) touching %d file(s)", payload.Branch(), payload.CommitCount(), len(files))

	// Keep going if the sender hangs up; the notifications still matter.
	ctx := context.WithoutCancel(r.Context())
	results := h.service.CompareWatching(ctx, repo, files)

	response := &models.WebhookResponse{
		Status:     "processed",
		Repository: repo,
		Checked:    len(results),
		Reports:    make([]*models.CompareResponse, 0, len(results)),
	}
	for _, res := range results {
		response.Reports = append(response.Reports, models.NewCompareResponse(res))
	}

	h.writeJSON(w, response, http.StatusOK)
}

// verifyWebhookSignature checks the HMAC SHA256 signature of the payload.
// Verification is skipped when no secret is configured.
func (h *Handler) verifyWebhookSignature(payload []byte, headerSignature string, config WebhookConfig) *errors.AppError {
	if config.Secret == "" {
		h.log.Warnf("%s webhook secret not configured, skipping signature verification", config.Provider)
		return nil
	}

	if headerSignature == "" {
		return errors.New(errors.ErrCodeUnauthorized, fmt.Sprintf("Missing %s header", config.SignatureHeader))
	}

	providedSignature := headerSignature
	if config.SignaturePrefix != "" {
		if !strings.HasPrefix(headerSignature, config.SignaturePrefix) {
			return errors.New(errors.ErrCodeUnauthorized, "Invalid webhook signature")
		}
		providedSignature = strings.TrimPrefix(headerSignature, config.SignaturePrefix)
	}

	if !hmac.Equal([]byte(providedSignature), []byte(Sign(payload, config.Secret))) {
		return errors.New(errors.ErrCodeUnauthorized, "Invalid webhook signature")
	}
	return nil
}

// Sign returns the hex HMAC SHA256 of payload
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
