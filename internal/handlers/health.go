package handlers

import (
	"net/http"
	"time"

	"github.com/nahidhasan98/script-drift/internal/models"
)

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := &models.HealthResponse{
		Status:     "ok",
		Scripts:    len(h.service.Catalog().Names()),
		Summarizer: h.opts.Summarizer,
		Timestamp:  time.Now().Unix(),
	}

	if h.opts.WhatsApp != nil {
		st := h.opts.WhatsApp.Status()
		response.WhatsApp = &st
	}

	h.writeJSON(w, response, http.StatusOK)
}
