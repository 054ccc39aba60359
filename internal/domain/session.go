package domain

import (
	"context"
	"time"
)

// Session is server-held login state for the web profile, keyed by an
// opaque token carried in a cookie. Expiry is absolute and independent
// of bearer-token lifetime; sessions never wrap a signed token.
type Session struct {
	Token     string
	UserID    int64
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionRepository defines persistence operations for login sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
