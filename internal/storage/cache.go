package storage

import (
	"context"

	lru "github.com/hashicorp/golang-lru"
)

var _ Store = &CachedStore{}

// CachedStore is a least-recently-used read cache in front of another store.
// Writes pass through to the underlying store before the cache is updated.
// Misses are not cached.
type CachedStore struct {
	c *lru.Cache // key -> value
	s Store
}

// NewCachedStore caches up to size values from s.
func NewCachedStore(s Store, size int) (*CachedStore, error) {
	c, err := lru.New(size)
	return &CachedStore{s: s, c: c}, err
}

func (s *CachedStore) Initialize() error { return s.s.Initialize() }

func (s *CachedStore) Close() error {
	s.c.Purge()
	return s.s.Close()
}

func (s *CachedStore) Get(ctx context.Context, key string) (string, error) {
	if v, ok := s.c.Get(key); ok {
		return v.(string), nil
	}
	v, err := s.s.Get(ctx, key)
	if err != nil {
		return "", err
	}
	s.c.Add(key, v)
	return v, nil
}

func (s *CachedStore) Put(ctx context.Context, key, value string) error {
	if err := s.s.Put(ctx, key, value); err != nil {
		s.c.Remove(key)
		return err
	}
	s.c.Add(key, value)
	return nil
}

func (s *CachedStore) List(ctx context.Context, f func(string) error) error {
	return s.s.List(ctx, f)
}
