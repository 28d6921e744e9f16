package handlers

import (
	"net/http"

	"github.com/nahidhasan98/script-drift/internal/models"
	"github.com/nahidhasan98/script-drift/internal/report"
)

// Compare runs one comparison, by catalog name or by locator pair
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req models.CompareRequest
	if appErr := h.decodeJSON(w, r, &req); appErr != nil {
		h.writeAppError(w, appErr)
		return
	}

	if appErr := h.validator.ValidateCompareRequest(&req); appErr != nil {
		h.writeAppError(w, appErr)
		return
	}

	var (
		res *report.Result
		err error
	)
	if req.Script != "" {
		res, err = h.service.Compare(r.Context(), req.Script, req.Notify)
	} else {
		res, err = h.service.CompareLocators(r.Context(), req.Baseline, req.Live, req.Notify)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, models.NewCompareResponse(res), http.StatusOK)
}
