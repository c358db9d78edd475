package repositories

import (
	"context"
	"database/sql"
	"errors"
)

// UserRepository implements the access gate over the allow-list table.
//
// The allow-list holds bare Telegram user ids; a user has access iff their
// row exists. There is no profile data.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the given database connection
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// HasAccess reports whether userID is on the allow-list.
// A backing-store failure is returned alongside false; callers must deny.
func (r *UserRepository) HasAccess(ctx context.Context, userID int64) (bool, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, "SELECT id FROM users WHERE id = ?", userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, storeErr("check access", err)
	}
	return true, nil
}

// Allow adds userID to the allow-list. Idempotent.
func (r *UserRepository) Allow(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, "INSERT OR IGNORE INTO users (id) VALUES (?)", userID); err != nil {
		return storeErr("allow user", err)
	}
	return nil
}

// Revoke removes userID from the allow-list. No-op when absent.
func (r *UserRepository) Revoke(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", userID); err != nil {
		return storeErr("revoke user", err)
	}
	return nil
}
