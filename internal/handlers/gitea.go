package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nahidhasan98/script-drift/internal/models"
)

// GiteaWebhook handles Gitea push webhooks
func (h *Handler) GiteaWebhook(w http.ResponseWriter, r *http.Request) {
	config := WebhookConfig{
		Provider:        ProviderGitea,
		SignatureHeader: "X-Gitea-Signature",
		EventHeader:     "X-Gitea-Event",
		Secret:          h.opts.GiteaSecret,
	}

	h.handleWebhook(w, r, config, func(body []byte) (models.PushEvent, error) {
		var payload models.GiteaPushPayload
		err := json.Unmarshal(body, &payload)
		return payload, err
	})
}
