package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// Well-known keys.
const (
	// KeyProfileDone records that the profile documents have been generated,
	// packaged and uploaded for the current topology. While set, discovery
	// cycles skip regeneration; a forced re-discover clears it first.
	KeyProfileDone = "profile_done"
)

// ErrNotFound indicates the requested key has never been set.
var ErrNotFound = errors.New("setting not found")

// Store is a small SQLite-backed key/value store for flags and state that
// must survive restarts.
type Store struct {
	db *sql.DB
}

// NewStore creates a settings store over the given database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get returns the value stored under key.
// Returns ErrNotFound if the key has never been set.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	const query = `SELECT value FROM settings WHERE key = ?`
	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("reading setting %s: %w", key, err)
	}
	return value, nil
}

// Set stores a value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	const query = `INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("writing setting %s: %w", key, err)
	}
	return nil
}

// GetBool returns the value stored under key interpreted as a boolean.
// A key that was never set reads as false.
func (s *Store) GetBool(ctx context.Context, key string) (bool, error) {
	value, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("setting %s is not a boolean: %w", key, err)
	}
	return b, nil
}

// SetBool stores a boolean value under key.
func (s *Store) SetBool(ctx context.Context, key string, value bool) error {
	return s.Set(ctx, key, strconv.FormatBool(value))
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting setting %s: %w", key, err)
	}
	return nil
}
