package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/romangod6/kvblog/config"
	"github.com/romangod6/kvblog/internal/utils"
)

// Factory opens a backend from configuration.
type Factory func(context.Context, *config.Config) (Store, error)

var registry = make(map[string]Factory)

// Register makes a backend available to Open under the given type name.
func Register(key string, f Factory) {
	registry[key] = f
}

// Types lists the registered backend names.
func Types() []string {
	types := make([]string, 0, len(registry))
	for k := range registry {
		types = append(types, k)
	}
	sort.Strings(types)
	return types
}

// Open creates the backend named by cfg.Store.Type and wraps it in the
// configured cache and logging layers.
// The caller is responsible for Initialize and Close.
func Open(ctx context.Context, cfg *config.Config, logger *utils.Logger) (Store, error) {
	f, ok := registry[cfg.Store.Type]
	if !ok {
		return nil, fmt.Errorf("unknown store type %q (have %v)", cfg.Store.Type, Types())
	}

	s, err := f(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Type, err)
	}

	if cfg.Store.LogOperations {
		s = NewLoggingStore(s, logger)
	}

	if cfg.Store.CacheSize > 0 {
		cached, err := NewCachedStore(s, cfg.Store.CacheSize)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to create cache: %w", err)
		}
		s = cached
	}

	return s, nil
}
