package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mytime/console/internal/core/domain"
)

type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(ctx context.Context, db *sql.DB) (*SessionStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	s := &SessionStore{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SessionStore) ensureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS console_session (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("ensure console_session schema: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, key string) (string, error) {
	const q = `SELECT value FROM console_session WHERE key = $1`
	var v string
	if err := s.db.QueryRowContext(ctx, q, key).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrKeyNotFound
		}
		return "", fmt.Errorf("select session key %s: %w", key, err)
	}
	return v, nil
}

func (s *SessionStore) Set(ctx context.Context, key, value string) error {
	const q = `
INSERT INTO console_session (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := s.db.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("upsert session key %s: %w", key, err)
	}
	return nil
}

func (s *SessionStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM console_session WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete session key %s: %w", key, err)
	}
	return nil
}
