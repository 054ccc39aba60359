package handler

import (
	"context"
	"net/http"
	"strings"

	"keybox/internal/domain"
	"keybox/internal/service"
)

type contextKey string

const (
	userIDContextKey  contextKey = "userID"
	sessionContextKey contextKey = "session"
)

const sessionCookieName = "session_token"

// UserIDFromContext extracts the authenticated user ID from the request
// context. The second return is false for unauthenticated requests.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDContextKey).(int64)
	return id, ok
}

// SessionFromContext extracts the login session from the request
// context. Returns nil when the request was authenticated by bearer
// token instead.
func SessionFromContext(ctx context.Context) *domain.Session {
	session, _ := ctx.Value(sessionContextKey).(*domain.Session)
	return session
}

// RequireToken protects the bearer API routes. It parses the
// Authorization header, verifies the JWT, and injects the subject user
// ID into the request context. Failures answer 401 INVALID_TOKEN.
func RequireToken(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := bearerUserID(r, auth)
		if err != nil {
			writeDomainError(w, domain.ErrInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSession protects the web routes. It resolves the session
// cookie and injects the session and user ID into the request context.
// Unauthenticated requests are redirected to the login page.
func RequireSession(sessions *service.SessionService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := cookieSession(r, sessions)
		if err != nil {
			http.Redirect(w, r, "/api/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		ctx = context.WithValue(ctx, userIDContextKey, session.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth protects routes shared by both profiles. A request
// carrying an Authorization header (or no session cookie at all) is
// treated as an API call and fails with 401 INVALID_TOKEN; a request
// relying on a session cookie is redirected to login on failure.
func RequireAuth(auth *service.AuthService, sessions *service.SessionService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie(sessionCookieName); err == nil && r.Header.Get("Authorization") == "" {
			RequireSession(sessions, next).ServeHTTP(w, r)
			return
		}
		RequireToken(auth, next).ServeHTTP(w, r)
	})
}

// SecurityHeaders sets baseline response headers on every request.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

func bearerUserID(r *http.Request, auth *service.AuthService) (int64, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return 0, domain.ErrInvalidToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, domain.ErrInvalidToken
	}

	return auth.VerifyToken(parts[1])
}

func cookieSession(r *http.Request, sessions *service.SessionService) (*domain.Session, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil, err
	}
	return sessions.Validate(r.Context(), cookie.Value)
}
