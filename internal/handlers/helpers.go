package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/nahidhasan98/script-drift/internal/errors"
	"github.com/nahidhasan98/script-drift/internal/models"
)

// maxRequestBody caps JSON request bodies and webhook payloads
const maxRequestBody = 1 << 20

// writeJSON writes a JSON response with the given status code
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("Failed to encode JSON response", err)
	}
}

// writeAppError writes an application error response
func (h *Handler) writeAppError(w http.ResponseWriter, appErr *errors.AppError) {
	response := &models.ErrorResponse{
		Error:   appErr.Message,
		Code:    string(appErr.Code),
		Details: appErr.Details,
	}

	h.log.With("error_code", appErr.Code).
		With("status_code", appErr.StatusCode).
		Error(appErr.Message, appErr.Err)

	h.writeJSON(w, response, appErr.StatusCode)
}

// writeError writes err as an AppError, treating anything else as internal
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.InternalError(err)
	}
	h.writeAppError(w, appErr)
}

// decodeJSON reads a bounded JSON body into v
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) *errors.AppError {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.InvalidRequest("Invalid request body: " + err.Error())
	}
	return nil
}
