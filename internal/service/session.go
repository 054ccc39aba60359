package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"keybox/internal/domain"
)

// SessionLifetime is how long a web login session remains valid. It is
// independent of bearer-token lifetime: the web profile never holds a
// signed token, only this server-side state.
const SessionLifetime = 24 * time.Hour

// SessionService manages server-side login sessions for the web profile.
type SessionService struct {
	sessions domain.SessionRepository
	auth     *AuthService
}

// NewSessionService creates a new SessionService.
func NewSessionService(sessions domain.SessionRepository, auth *AuthService) *SessionService {
	return &SessionService{sessions: sessions, auth: auth}
}

// Login verifies credentials and mints a new session with an opaque
// token and an absolute expiry.
func (s *SessionService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	if username == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := s.auth.VerifyCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionLifetime),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// Validate resolves a session token. Unknown and expired tokens fail
// identically; an expired row is removed on first touch.
func (s *SessionService) Validate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			return nil, fmt.Errorf("delete expired session: %w", err)
		}
		return nil, domain.ErrInvalidToken
	}

	return session, nil
}

// Logout removes the session. Logging out an already-cleared session is
// not an error.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}
