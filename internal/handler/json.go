package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"keybox/internal/domain"
)

// envelope is the uniform response body: status is "success" or
// "error", code is set only on errors, data only when there is a
// payload.
type envelope struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// writeJSON sends a JSON response with the given status code and body.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeSuccess sends a success envelope.
func writeSuccess(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, envelope{Status: "success", Message: message, Data: data})
}

// writeDomainError maps a service error onto the wire. Coded domain
// errors translate to their HTTP status; anything else is logged and
// becomes the opaque 500 envelope, never a raw fault.
func writeDomainError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		slog.Error("internal error", "error", err)
		de = domain.ErrInternal
	}
	writeJSON(w, statusForCode(de.Code), envelope{Status: "error", Code: de.Code, Message: de.Message})
}

func statusForCode(code string) int {
	switch code {
	case "USERNAME_EXISTS", "EMAIL_EXISTS", "KEY_EXISTS":
		return http.StatusConflict
	case "INVALID_CREDENTIALS", "INVALID_TOKEN":
		return http.StatusUnauthorized
	case "KEY_NOT_FOUND":
		return http.StatusNotFound
	case "INTERNAL_SERVER_ERROR":
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// readJSON decodes the request body into the given destination.
func readJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
