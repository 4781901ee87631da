package storage

import (
	"context"
	"database/sql"
	stderrs "errors"
	"fmt"

	"github.com/bobg/sqlutil"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/romangod6/kvblog/config"
)

var _ Store = &PostgresStore{}

type PostgresStore struct {
	db    *sql.DB
	table string // quoted identifier
}

// NewPostgresStore connects to connStr and keeps keys in the named table.
func NewPostgresStore(connStr, table string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if table == "" {
		table = "articles_kv"
	}

	return &PostgresStore{db: db, table: pq.QuoteIdentifier(table)}, nil
}

func (s *PostgresStore) Initialize() error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL
        )`, s.table)

	if _, err := s.db.Exec(query); err != nil {
		return errors.Wrapf(err, "executing %s", query)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	q := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, s.table)

	var value string
	err := s.db.QueryRowContext(ctx, q, key).Scan(&value)
	if stderrs.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return value, errors.Wrapf(err, "getting %s", key)
}

func (s *PostgresStore) Put(ctx context.Context, key, value string) error {
	q := fmt.Sprintf(`
        INSERT INTO %s (key, value) VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
    `, s.table)

	_, err := s.db.ExecContext(ctx, q, key, value)
	return errors.Wrapf(err, "putting %s", key)
}

// List produces keys in the collation order of the key column.
func (s *PostgresStore) List(ctx context.Context, f func(string) error) error {
	q := fmt.Sprintf(`SELECT key FROM %s ORDER BY key`, s.table)
	return sqlutil.ForQueryRows(ctx, s.db, q, func(key string) error {
		return f(key)
	})
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func init() {
	Register("postgres", func(_ context.Context, cfg *config.Config) (Store, error) {
		if cfg.Store.URL == "" {
			return nil, errors.New("store.url is required for the postgres store")
		}
		return NewPostgresStore(cfg.Store.URL, cfg.Store.Table)
	})
}
