package articles

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/romangod6/kvblog/internal/storage"
)

// IDWidth is the minimum number of digits in an article id.
const IDWidth = 6

// FormatID renders n as a zero-padded decimal id, e.g. 42 -> "000042".
func FormatID(n int) string {
	return fmt.Sprintf("%0*d", IDWidth, n)
}

// ParseID returns the number encoded in id, or false if id is not at least
// IDWidth decimal digits.
func ParseID(id string) (int, bool) {
	if len(id) < IDWidth {
		return 0, false
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ValidID reports whether id has the article id format.
func ValidID(id string) bool {
	_, ok := ParseID(id)
	return ok
}

// IDGenerator assigns ids to new articles.
type IDGenerator interface {
	NextID(ctx context.Context) (string, error)
}

// CountingIDs numbers a new article as the count of stored keys plus one.
// Two callers that count before either writes get the same id, and the later
// write silently replaces the earlier one. Ids are also reused whenever a
// foreign key sits in the store. It is kept for comparison only.
type CountingIDs struct {
	store storage.Store
}

func NewCountingIDs(store storage.Store) *CountingIDs {
	return &CountingIDs{store: store}
}

func (g *CountingIDs) NextID(ctx context.Context) (string, error) {
	var n int
	err := g.store.List(ctx, func(string) error {
		n++
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: counting keys: %w", ErrStoreUnavailable, err)
	}
	return FormatID(n + 1), nil
}

// SequentialIDs hands out increasing ids from an in-process counter.
// The counter is seeded once, from the largest numeric key in the store,
// so ids are never reused within a process even when the store has gaps.
// Processes sharing one store must not both create articles.
type SequentialIDs struct {
	store storage.Store

	mu     sync.Mutex
	next   int
	seeded bool
}

func NewSequentialIDs(store storage.Store) *SequentialIDs {
	return &SequentialIDs{store: store}
}

func (g *SequentialIDs) NextID(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.seeded {
		highest := 0
		err := g.store.List(ctx, func(key string) error {
			if n, ok := ParseID(key); ok && n > highest {
				highest = n
			}
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("%w: seeding id counter: %w", ErrStoreUnavailable, err)
		}
		g.next = highest + 1
		g.seeded = true
	}

	id := FormatID(g.next)
	g.next++
	return id, nil
}
