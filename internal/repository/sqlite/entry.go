package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"keybox/internal/domain"
)

// EntryRepository implements domain.EntryRepository using SQLite.
// The (user_id, key) unique index is the backstop against racing
// inserts on the same key.
type EntryRepository struct {
	db *sql.DB
}

func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO data (user_id, key, value, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.UserID, entry.Key, entry.Value, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err, "data.user_id") {
			return domain.ErrKeyExists
		}
		return fmt.Errorf("insert entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	entry.ID = id
	entry.CreatedAt = now
	entry.UpdatedAt = now
	return nil
}

func (r *EntryRepository) GetByUserAndKey(ctx context.Context, userID int64, key string) (*domain.Entry, error) {
	entry := &domain.Entry{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, key, value, created_at, updated_at
		 FROM data WHERE user_id = ? AND key = ?`, userID, key,
	).Scan(&entry.ID, &entry.UserID, &entry.Key, &entry.Value, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query entry: %w", err)
	}
	return entry, nil
}

func (r *EntryRepository) UpdateValue(ctx context.Context, userID int64, key, value string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE data SET value = ?, updated_at = ? WHERE user_id = ? AND key = ?`,
		value, time.Now().UTC(), userID, key,
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EntryRepository) Delete(ctx context.Context, userID int64, key string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM data WHERE user_id = ? AND key = ?`, userID, key,
	)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
