package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yourusername/rc-shop-bot/internal/domain/repository"
)

type sqliteKVStore struct {
	db *sql.DB
}

// NewSQLiteKVStore SQLite asosidagi kalit-qiymat ombori
func NewSQLiteKVStore(db *sql.DB) repository.KeyValueStore {
	return &sqliteKVStore{db: db}
}

func (s *sqliteKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *sqliteKVStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`, key, value)
	return err
}

func (s *sqliteKVStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}
