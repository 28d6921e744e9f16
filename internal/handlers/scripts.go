package handlers

import (
	"net/http"

	"github.com/nahidhasan98/script-drift/internal/models"
)

// ListScripts returns the catalog
func (h *Handler) ListScripts(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, &models.ScriptsResponse{Scripts: h.service.Catalog().Scripts()}, http.StatusOK)
}
