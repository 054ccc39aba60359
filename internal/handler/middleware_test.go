package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"keybox/internal/handler"
	"keybox/internal/repository/sqlite"
	"keybox/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests"

func newTestServices(t *testing.T) (*service.AuthService, *service.KVService, *service.SessionService) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// Use cost 4 for fast tests.
	auth := service.NewAuthService(db.Users(), testJWTSecret, 4)
	return auth, service.NewKVService(db.Entries()), service.NewSessionService(db.Sessions(), auth)
}

func registerTestUser(t *testing.T, auth *service.AuthService, username string) int64 {
	t.Helper()
	user, err := auth.Register(context.Background(), service.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "Passw0rd!",
		FullName: "Test User",
		Age:      "30",
		Gender:   "other",
	})
	if err != nil {
		t.Fatalf("Register %s: %v", username, err)
	}
	return user.ID
}

type testEnvelope struct {
	Status  string          `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) testEnvelope {
	t.Helper()
	defer resp.Body.Close()
	var env testEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestRequireToken_Valid(t *testing.T) {
	auth, _, _ := newTestServices(t)
	userID := registerTestUser(t, auth, "valid")

	token, _, err := auth.IssueToken(context.Background(), "valid", "Passw0rd!")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	var gotID int64
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = handler.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.RequireToken(auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotID != userID {
		t.Fatalf("expected user ID %d, got %d", userID, gotID)
	}
}

func TestRequireToken_MissingHeader(t *testing.T) {
	auth, _, _ := newTestServices(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	handler.RequireToken(auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	var env testEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Code != "INVALID_TOKEN" {
		t.Fatalf("expected code INVALID_TOKEN, got %s", env.Code)
	}
}

func TestRequireToken_BadHeader(t *testing.T) {
	auth, _, _ := newTestServices(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	for _, header := range []string{"Basic abc123", "Bearer", "garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()

		handler.RequireToken(auth, inner).ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestRequireSession_MissingCookie(t *testing.T) {
	_, _, sessions := newTestServices(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()

	handler.RequireSession(sessions, inner).ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/api/login" {
		t.Fatalf("expected redirect to /api/login, got %s", loc)
	}
}

func TestRequireSession_Valid(t *testing.T) {
	auth, _, sessions := newTestServices(t)
	registerTestUser(t, auth, "sessuser")

	session, err := sessions.Login(context.Background(), "sessuser", "Passw0rd!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	var gotUsername string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s := handler.SessionFromContext(r.Context()); s != nil {
			gotUsername = s.Username
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: session.Token})
	w := httptest.NewRecorder()

	handler.RequireSession(sessions, inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotUsername != "sessuser" {
		t.Fatalf("expected username sessuser, got %q", gotUsername)
	}
}

func TestSecurityHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.SecurityHeaders(inner).ServeHTTP(w, req)

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected nosniff, got %q", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("expected DENY, got %q", got)
	}
}
