package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/fintrack/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeError maps a service error onto a status code and message.
// resource names the entity in 404 responses, e.g. "Goal".
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	switch {
	case errors.Is(err, errBadRequest):
		writeMessage(w, http.StatusBadRequest, detail(err, errBadRequest))
	case errors.Is(err, common.ErrValidation):
		writeMessage(w, http.StatusBadRequest, detail(err, common.ErrValidation))
	case errors.Is(err, common.ErrAlreadyExists):
		writeMessage(w, http.StatusBadRequest, "Email already in use")
	case errors.Is(err, common.ErrInvalidCredentials):
		writeMessage(w, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, resource+" not found")
	default:
		h.log.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
	}
}

// detail strips everything up to and including the sentinel prefix.
func detail(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
