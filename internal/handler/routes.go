package handler

import (
	"net/http"

	"keybox/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, kv *service.KVService, sessions *service.SessionService, cookieSecure bool) {
	authHandler := NewAuthHandler(auth)
	dataHandler := NewDataHandler(kv)
	webHandler := NewWebHandler(auth, sessions, kv, cookieSecure)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	// Bearer-token API profile.
	mux.HandleFunc("POST /api/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/token", authHandler.HandleToken)
	mux.Handle("POST /api/data", RequireAuth(auth, sessions, http.HandlerFunc(dataHandler.HandleStore)))
	mux.Handle("GET /api/data/{key}", RequireToken(auth, http.HandlerFunc(dataHandler.HandleRetrieve)))
	mux.Handle("PUT /api/data/{key}", RequireToken(auth, http.HandlerFunc(dataHandler.HandleUpdate)))
	mux.Handle("DELETE /api/data/{key}", RequireToken(auth, http.HandlerFunc(dataHandler.HandleDelete)))

	// Session web profile. The literal /api/data/retrieve|update|delete
	// segments take precedence over the {key} wildcard above.
	mux.HandleFunc("GET /api/login", webHandler.HandleLoginForm)
	mux.HandleFunc("POST /api/login", webHandler.HandleLogin)
	mux.Handle("GET /dashboard", RequireSession(sessions, http.HandlerFunc(webHandler.HandleDashboard)))
	mux.Handle("GET /api/data/retrieve", RequireSession(sessions, http.HandlerFunc(webHandler.HandleRetrieve)))
	mux.Handle("POST /api/data/update", RequireSession(sessions, http.HandlerFunc(webHandler.HandleUpdate)))
	mux.Handle("POST /api/data/delete", RequireSession(sessions, http.HandlerFunc(webHandler.HandleDelete)))
	mux.HandleFunc("GET /api/logout", webHandler.HandleLogout)
	mux.HandleFunc("POST /api/logout", webHandler.HandleLogout)
}
