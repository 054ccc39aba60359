package domain

import (
	"context"
	"time"
)

// Entry is one key/value pair owned by a single user. Keys are unique
// per owner, not globally: two users may store the same key text.
type Entry struct {
	ID        int64
	UserID    int64
	Key       string
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntryRepository defines persistence operations for entries. Lookups
// are always scoped to an owner; there is no cross-user access path.
type EntryRepository interface {
	Create(ctx context.Context, entry *Entry) error
	GetByUserAndKey(ctx context.Context, userID int64, key string) (*Entry, error)
	UpdateValue(ctx context.Context, userID int64, key, value string) error
	Delete(ctx context.Context, userID int64, key string) error
}
