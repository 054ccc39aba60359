package handler

import (
	"log/slog"
	"net/http"

	"keybox/internal/domain"
	"keybox/internal/service"
)

// WebHandler handles the session-cookie profile: form-encoded login,
// dashboard, and the retrieve/update/delete routes. Responses are JSON
// envelopes; unauthenticated requests get redirected to /api/login by
// the session middleware.
type WebHandler struct {
	auth         *service.AuthService
	sessions     *service.SessionService
	kv           *service.KVService
	cookieSecure bool
}

// NewWebHandler creates a new WebHandler.
func NewWebHandler(auth *service.AuthService, sessions *service.SessionService, kv *service.KVService, cookieSecure bool) *WebHandler {
	return &WebHandler{auth: auth, sessions: sessions, kv: kv, cookieSecure: cookieSecure}
}

// HandleLoginForm answers the login page route.
// GET /api/login
func (h *WebHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, "Please log in with your username and password.", nil)
}

// HandleLogin processes a form login, mints a session, and redirects to
// the dashboard.
// POST /api/login (form: username, password)
func (h *WebHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDomainError(w, domain.ErrMissingFields)
		return
	}

	session, err := h.sessions.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(service.SessionLifetime.Seconds()),
	})

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// HandleDashboard returns the logged-in user's profile.
// GET /dashboard
func (h *WebHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		http.Redirect(w, r, "/api/login", http.StatusSeeOther)
		return
	}

	user, err := h.auth.GetUser(r.Context(), session.UserID)
	if err != nil {
		slog.Error("load dashboard user", "error", err)
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, "Welcome back, "+user.Username+"!", toUserDTO(user))
}

// HandleRetrieve returns the value stored under the query key.
// GET /api/data/retrieve?key=...
func (h *WebHandler) HandleRetrieve(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	entry, err := h.kv.Retrieve(r.Context(), userID, r.URL.Query().Get("key"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, "Data retrieved successfully!", toEntryDTO(entry))
}

// HandleUpdate replaces the value under an existing key.
// POST /api/data/update (form: key, value)
func (h *WebHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		writeDomainError(w, domain.ErrMissingValue)
		return
	}

	if err := h.kv.Update(r.Context(), userID, r.PostFormValue("key"), r.PostFormValue("value")); err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, "Data updated successfully.", nil)
}

// HandleDelete removes the entry under the form key.
// POST /api/data/delete (form: key)
func (h *WebHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		writeDomainError(w, domain.ErrInvalidKey)
		return
	}

	if err := h.kv.Delete(r.Context(), userID, r.PostFormValue("key")); err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, "Data deleted successfully.", nil)
}

// HandleLogout clears the session server-side and client-side, then
// redirects to the login page.
// GET|POST /api/logout
func (h *WebHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if err := h.sessions.Logout(r.Context(), cookie.Value); err != nil {
			slog.Error("logout session", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	http.Redirect(w, r, "/api/login", http.StatusSeeOther)
}
