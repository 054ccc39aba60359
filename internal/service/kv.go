package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"keybox/internal/domain"
)

// KVService implements the per-user key/value operations. Both the
// bearer-token API and the session web routes call through here, so the
// validation rules are identical for every entry point.
type KVService struct {
	entries domain.EntryRepository
}

// NewKVService creates a new KVService.
func NewKVService(entries domain.EntryRepository) *KVService {
	return &KVService{entries: entries}
}

// Store saves a new key/value pair for the user. Key and value are
// trimmed; storing an existing key is a conflict, not an overwrite.
func (s *KVService) Store(ctx context.Context, userID int64, key, value string) (*domain.Entry, error) {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" {
		return nil, domain.ErrInvalidKey
	}
	if value == "" {
		return nil, domain.ErrInvalidValue
	}

	if _, err := s.entries.GetByUserAndKey(ctx, userID, key); err == nil {
		return nil, domain.ErrKeyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check existing entry: %w", err)
	}

	entry := &domain.Entry{UserID: userID, Key: key, Value: value}
	if err := s.entries.Create(ctx, entry); err != nil {
		// Racing stores on the same key land on the unique index.
		if errors.Is(err, domain.ErrKeyExists) {
			return nil, domain.ErrKeyExists
		}
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return entry, nil
}

// Retrieve returns the user's entry for the key.
func (s *KVService) Retrieve(ctx context.Context, userID int64, key string) (*domain.Entry, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, domain.ErrInvalidKey
	}

	entry, err := s.entries.GetByUserAndKey(ctx, userID, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entry, nil
}

// Update replaces the value under an existing key. The key must exist
// before the value is validated, so a bad update against a missing key
// still reports KEY_NOT_FOUND.
func (s *KVService) Update(ctx context.Context, userID int64, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrInvalidKey
	}

	if _, err := s.entries.GetByUserAndKey(ctx, userID, key); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrKeyNotFound
		}
		return fmt.Errorf("check existing entry: %w", err)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return domain.ErrMissingValue
	}

	if err := s.entries.UpdateValue(ctx, userID, key, value); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrKeyNotFound
		}
		return fmt.Errorf("update entry: %w", err)
	}
	return nil
}

// Delete removes the user's entry for the key.
func (s *KVService) Delete(ctx context.Context, userID int64, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrInvalidKey
	}

	if err := s.entries.Delete(ctx, userID, key); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrKeyNotFound
		}
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}
