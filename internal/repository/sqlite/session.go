package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"keybox/internal/domain"
)

// SessionRepository implements domain.SessionRepository using SQLite.
// Sessions are persisted so a restart does not log everyone out.
type SessionRepository struct {
	db *sql.DB
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, username, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)`,
		session.Token, session.UserID, session.Username, session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	session := &domain.Session{}
	err := r.db.QueryRowContext(ctx,
		`SELECT token, user_id, username, created_at, expires_at
		 FROM sessions WHERE token = ?`, token,
	).Scan(&session.Token, &session.UserID, &session.Username, &session.CreatedAt, &session.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query session: %w", err)
	}
	return session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
