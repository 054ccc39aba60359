package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"keybox/internal/domain"
)

func createTestUser(t *testing.T, users domain.UserRepository, username string) int64 {
	t.Helper()
	user := testUser(username, username+"@example.com")
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user.ID
}

func TestEntryRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t, db.Users(), "dave")
	entries := db.Entries()

	entry := &domain.Entry{UserID: userID, Key: "color", Value: "blue"}
	if err := entries.Create(ctx, entry); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("expected entry ID to be set")
	}

	got, err := entries.GetByUserAndKey(ctx, userID, "color")
	if err != nil {
		t.Fatalf("GetByUserAndKey: %v", err)
	}
	if got.Value != "blue" {
		t.Fatalf("expected value blue, got %s", got.Value)
	}
}

func TestEntryRepository_DuplicateKeySameUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t, db.Users(), "erin")
	entries := db.Entries()

	if err := entries.Create(ctx, &domain.Entry{UserID: userID, Key: "k", Value: "v1"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	err := entries.Create(ctx, &domain.Entry{UserID: userID, Key: "k", Value: "v2"})
	if !errors.Is(err, domain.ErrKeyExists) {
		t.Fatalf("expected ErrKeyExists, got %v", err)
	}
}

func TestEntryRepository_SameKeyDifferentUsers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	entries := db.Entries()

	// Keys are scoped per owner: two users may use the same key text.
	user1 := createTestUser(t, db.Users(), "frank")
	user2 := createTestUser(t, db.Users(), "grace")

	if err := entries.Create(ctx, &domain.Entry{UserID: user1, Key: "shared", Value: "one"}); err != nil {
		t.Fatalf("Create for user1: %v", err)
	}
	if err := entries.Create(ctx, &domain.Entry{UserID: user2, Key: "shared", Value: "two"}); err != nil {
		t.Fatalf("Create for user2: %v", err)
	}

	got1, err := entries.GetByUserAndKey(ctx, user1, "shared")
	if err != nil {
		t.Fatalf("GetByUserAndKey user1: %v", err)
	}
	got2, err := entries.GetByUserAndKey(ctx, user2, "shared")
	if err != nil {
		t.Fatalf("GetByUserAndKey user2: %v", err)
	}
	if got1.Value != "one" || got2.Value != "two" {
		t.Fatalf("expected isolated values, got %q and %q", got1.Value, got2.Value)
	}
}

func TestEntryRepository_UpdateValue(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t, db.Users(), "heidi")
	entries := db.Entries()

	if err := entries.Create(ctx, &domain.Entry{UserID: userID, Key: "k", Value: "old"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := entries.UpdateValue(ctx, userID, "k", "new"); err != nil {
		t.Fatalf("UpdateValue: %v", err)
	}

	got, err := entries.GetByUserAndKey(ctx, userID, "k")
	if err != nil {
		t.Fatalf("GetByUserAndKey: %v", err)
	}
	if got.Value != "new" {
		t.Fatalf("expected value new, got %s", got.Value)
	}

	if err := entries.UpdateValue(ctx, userID, "missing", "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEntryRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t, db.Users(), "ivan")
	entries := db.Entries()

	if err := entries.Create(ctx, &domain.Entry{UserID: userID, Key: "k", Value: "v"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := entries.Delete(ctx, userID, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := entries.GetByUserAndKey(ctx, userID, "k"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	if err := entries.Delete(ctx, userID, "k"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for second delete, got %v", err)
	}
}

func TestEntryRepository_OwnershipIsolation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	entries := db.Entries()

	owner := createTestUser(t, db.Users(), "judy")
	other := createTestUser(t, db.Users(), "karl")

	if err := entries.Create(ctx, &domain.Entry{UserID: owner, Key: "secret", Value: "v"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := entries.GetByUserAndKey(ctx, other, "secret"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}
	if err := entries.Delete(ctx, other, "secret"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting as other user, got %v", err)
	}
}
