package handler

import (
	"net/http"
	"strings"

	"keybox/internal/domain"
	"keybox/internal/service"
)

// DataHandler handles the key/value API routes.
type DataHandler struct {
	kv *service.KVService
}

// NewDataHandler creates a new DataHandler.
func NewDataHandler(kv *service.KVService) *DataHandler {
	return &DataHandler{kv: kv}
}

// HandleStore stores a new key/value pair for the authenticated user.
// POST /api/data — accepts a JSON body or form fields, since both the
// bearer and the session profile share this route.
func (h *DataHandler) HandleStore(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeDomainError(w, domain.ErrInvalidToken)
		return
	}

	key, value, err := readKeyValue(r)
	if err != nil {
		writeDomainError(w, domain.ErrInvalidRequest)
		return
	}

	if _, err := h.kv.Store(r.Context(), userID, key, value); err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, "Data stored successfully.", nil)
}

// HandleRetrieve returns the value stored under the path key.
// GET /api/data/{key}
func (h *DataHandler) HandleRetrieve(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeDomainError(w, domain.ErrInvalidToken)
		return
	}

	entry, err := h.kv.Retrieve(r.Context(), userID, r.PathValue("key"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, "Data retrieved successfully!", toEntryDTO(entry))
}

// HandleUpdate replaces the value stored under the path key.
// PUT /api/data/{key}
// Request: {"value":"..."}
func (h *DataHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeDomainError(w, domain.ErrInvalidToken)
		return
	}

	var req struct {
		Value string `json:"value"`
	}
	// An unreadable or empty body is treated as a missing value; the
	// service still reports KEY_NOT_FOUND first for absent keys.
	_ = readJSON(r, &req)

	if err := h.kv.Update(r.Context(), userID, r.PathValue("key"), req.Value); err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, "Data updated successfully.", nil)
}

// HandleDelete removes the entry stored under the path key.
// DELETE /api/data/{key}
func (h *DataHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeDomainError(w, domain.ErrInvalidToken)
		return
	}

	if err := h.kv.Delete(r.Context(), userID, r.PathValue("key")); err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, "Data deleted successfully.", nil)
}

// readKeyValue extracts key and value from either a JSON body or
// form-encoded fields, depending on the request content type.
func readKeyValue(r *http.Request) (string, string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		}
		if err := readJSON(r, &req); err != nil {
			return "", "", err
		}
		return req.Key, req.Value, nil
	}

	if err := r.ParseForm(); err != nil {
		return "", "", err
	}
	return r.PostFormValue("key"), r.PostFormValue("value"), nil
}
