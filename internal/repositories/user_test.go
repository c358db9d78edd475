package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/mxsolis/contentbot/internal/shared"
)

// newTestDB opens an in-memory database with the schema applied. The pool is
// pinned to one connection so every statement sees the same memory database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("HasAccess Unknown User", func(t *testing.T) {
		repo := NewUserRepository(newTestDB(t))

		ok, err := repo.HasAccess(ctx, 42)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ok {
			t.Error("expected unknown user to be denied")
		}
	})

	t.Run("Allow And Revoke", func(t *testing.T) {
		repo := NewUserRepository(newTestDB(t))

		if err := repo.Allow(ctx, 42); err != nil {
			t.Fatalf("failed to allow user: %v", err)
		}

		ok, err := repo.HasAccess(ctx, 42)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !ok {
			t.Error("expected allowed user to have access")
		}

		// Idempotent
		if err := repo.Allow(ctx, 42); err != nil {
			t.Errorf("expected repeated allow to succeed, got %v", err)
		}

		if err := repo.Revoke(ctx, 42); err != nil {
			t.Fatalf("failed to revoke user: %v", err)
		}

		ok, err = repo.HasAccess(ctx, 42)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ok {
			t.Error("expected revoked user to be denied")
		}
	})
}
