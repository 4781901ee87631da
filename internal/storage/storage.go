// Package storage provides the key-value stores that hold blog articles.
//
// Every backend maps string keys to string values and supports point reads,
// point writes and key enumeration. Nothing else is assumed: no ordering
// guarantees beyond what a backend documents, and no multi-key transactions.
package storage

import (
	"context"
	"errors"
)

type Store interface {
	Initialize() error
	Close() error

	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error

	// List calls f for each key in the store.
	// The calls reflect at least the keys present when List was called.
	// If f returns an error, List stops and returns it.
	List(ctx context.Context, f func(key string) error) error
}

// ErrNotFound is returned by Get for a key that is not in the store.
var ErrNotFound = errors.New("key not found")

// Keys collects every key in s.
func Keys(ctx context.Context, s Store) ([]string, error) {
	var keys []string
	err := s.List(ctx, func(key string) error {
		keys = append(keys, key)
		return nil
	})
	return keys, err
}
