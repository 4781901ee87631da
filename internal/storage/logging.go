package storage

import (
	"context"
	"errors"
	"time"

	"github.com/romangod6/kvblog/internal/utils"
)

var _ Store = &LoggingStore{}

// LoggingStore delegates everything to a nested store,
// logging operations at debug level and failures at error level.
type LoggingStore struct {
	s      Store
	logger *utils.Logger
}

func NewLoggingStore(s Store, logger *utils.Logger) *LoggingStore {
	return &LoggingStore{s: s, logger: logger}
}

func (s *LoggingStore) Initialize() error {
	err := s.s.Initialize()
	if err != nil {
		s.logger.LogError("store Initialize: %v", err)
	}
	return err
}

func (s *LoggingStore) Close() error { return s.s.Close() }

func (s *LoggingStore) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()
	v, err := s.s.Get(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		s.logger.LogDebug("store Get %s: not found (%s)", key, time.Since(start))
	case err != nil:
		s.logger.LogError("store Get %s: %v", key, err)
	default:
		s.logger.LogDebug("store Get %s: %d bytes (%s)", key, len(v), time.Since(start))
	}
	return v, err
}

func (s *LoggingStore) Put(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.s.Put(ctx, key, value)
	if err != nil {
		s.logger.LogError("store Put %s: %v", key, err)
	} else {
		s.logger.LogDebug("store Put %s: %d bytes (%s)", key, len(value), time.Since(start))
	}
	return err
}

func (s *LoggingStore) List(ctx context.Context, f func(string) error) error {
	var n int
	err := s.s.List(ctx, func(key string) error {
		n++
		return f(key)
	})
	if err != nil {
		s.logger.LogError("store List after %d keys: %v", n, err)
	} else {
		s.logger.LogDebug("store List: %d keys", n)
	}
	return err
}
