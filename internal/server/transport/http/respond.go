package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mpetrenko/linkfolio/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondError maps a service error onto a status code and the error
// envelope. Anything outside the known taxonomy becomes a generic 500;
// the detail is logged, never echoed.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.log.Error(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrUnknownStep):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrAuthenticationFailed):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, common.ErrDuplicateField):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
