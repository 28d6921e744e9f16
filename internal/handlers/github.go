package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nahidhasan98/script-drift/internal/models"
)

// GitHubWebhook handles GitHub push webhooks
func (h *Handler) GitHubWebhook(w http.ResponseWriter, r *http.Request) {
	config := WebhookConfig{
		Provider:        ProviderGitHub,
		SignatureHeader: "X-Hub-Signature-256",
		EventHeader:     "X-GitHub-Event",
		Secret:          h.opts.GitHubSecret,
		SignaturePrefix: "sha256=",
	}

	h.handleWebhook(w, r, config, func(body []byte) (models.PushEvent, error) {
		var payload models.GitHubPushPayload
		err := json.Unmarshal(body, &payload)
		return payload, err
	})
}
