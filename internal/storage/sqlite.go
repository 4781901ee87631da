package storage

import (
	"context"
	"database/sql"
	stderrs "errors"

	"github.com/bobg/sqlutil"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/romangod6/kvblog/config"
)

var _ Store = &SQLiteStore{}

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Initialize() error {
	queries := []string{
		`PRAGMA journal_mode=WAL`,
		`CREATE TABLE IF NOT EXISTS kv (
            key TEXT PRIMARY KEY NOT NULL,
            value TEXT NOT NULL
        )`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return errors.Wrapf(err, "executing %s", query)
		}
	}

	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	const q = `SELECT value FROM kv WHERE key = ?`

	var value string
	err := s.db.QueryRowContext(ctx, q, key).Scan(&value)
	if stderrs.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return value, errors.Wrapf(err, "getting %s", key)
}

func (s *SQLiteStore) Put(ctx context.Context, key, value string) error {
	const q = `
        INSERT INTO kv (key, value) VALUES (?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value
    `

	_, err := s.db.ExecContext(ctx, q, key, value)
	return errors.Wrapf(err, "putting %s", key)
}

// List produces keys in lexicographic order.
func (s *SQLiteStore) List(ctx context.Context, f func(string) error) error {
	const q = `SELECT key FROM kv ORDER BY key`
	return sqlutil.ForQueryRows(ctx, s.db, q, func(key string) error {
		return f(key)
	})
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func init() {
	Register("sqlite", func(_ context.Context, cfg *config.Config) (Store, error) {
		return NewSQLiteStore(cfg.Store.Path)
	})
}
