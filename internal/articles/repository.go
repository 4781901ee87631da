// Package articles stores blog articles in a key-value store.
//
// Each article lives under its id as a JSON record. The repository assigns
// ids, validates and encodes articles on the way in, and decodes them on the
// way out. Records that fail to decode are reported by Get and skipped by
// the enumeration methods, so one bad record never hides the rest.
package articles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/romangod6/kvblog/internal/models"
	"github.com/romangod6/kvblog/internal/storage"
	"github.com/romangod6/kvblog/internal/utils"
)

const defaultConcurrency = 8

type Repository struct {
	store       storage.Store
	ids         IDGenerator
	logger      *utils.Logger
	concurrency int
	now         func() time.Time
}

type Option func(*Repository)

// WithIDGenerator replaces the default SequentialIDs.
func WithIDGenerator(g IDGenerator) Option {
	return func(r *Repository) { r.ids = g }
}

// WithConcurrency bounds the number of parallel reads in ListAll.
func WithConcurrency(n int) Option {
	return func(r *Repository) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithClock sets the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

func NewRepository(store storage.Store, logger *utils.Logger, opts ...Option) *Repository {
	r := &Repository{
		store:       store,
		ids:         NewSequentialIDs(store),
		logger:      logger,
		concurrency: defaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GenerateID returns the id the next new article should be saved under.
func (r *Repository) GenerateID(ctx context.Context) (string, error) {
	return r.ids.NextID(ctx)
}

// Save validates a and writes it under id with a single store put.
// On success a.ID is set to id.
func (r *Repository) Save(ctx context.Context, id string, a *models.Article) error {
	if err := validate(id, a); err != nil {
		return err
	}

	value, err := Encode(a)
	if err != nil {
		return err
	}

	if err := r.store.Put(ctx, id, value); err != nil {
		return fmt.Errorf("%w: saving %s: %w", ErrStoreUnavailable, id, err)
	}

	a.ID = id
	r.logger.LogDebug("Saved article %s (%q)", id, a.Title)
	return nil
}

// Create stamps a new article with the current time, assigns it an id and saves it.
func (r *Repository) Create(ctx context.Context, title, content, img string) (*models.Article, error) {
	a := models.NewArticle(title, content, img, r.now())

	// Reject before consuming an id.
	if err := validate(FormatID(1), a); err != nil {
		return nil, err
	}

	id, err := r.GenerateID(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.Save(ctx, id, a); err != nil {
		return nil, err
	}

	r.logger.LogInfo("Created article %s: %s", id, title)
	return a, nil
}

// Get fetches the article stored under id.
func (r *Repository) Get(ctx context.Context, id string) (*models.Article, error) {
	raw, err := r.store.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getting %s: %w", ErrStoreUnavailable, id, err)
	}
	return Decode(id, raw)
}

// Keys returns every key in the store, in the store's enumeration order.
func (r *Repository) Keys(ctx context.Context) ([]string, error) {
	keys, err := storage.Keys(ctx, r.store)
	if err != nil {
		return nil, fmt.Errorf("%w: listing keys: %w", ErrStoreUnavailable, err)
	}
	return keys, nil
}

// Count returns the number of stored records.
func (r *Repository) Count(ctx context.Context) (int, error) {
	keys, err := r.Keys(ctx)
	return len(keys), err
}

// Each calls fn for each readable article, one store read at a time, in
// enumeration order. If fn returns an error, Each stops and returns it.
func (r *Repository) Each(ctx context.Context, fn func(*models.Article) error) error {
	keys, err := r.Keys(ctx)
	if err != nil {
		return err
	}

	for _, key := range keys {
		a, err := r.Get(ctx, key)
		if r.skippable(key, err) {
			continue
		}
		if err != nil {
			return err
		}
		if err := fn(a); err != nil {
			return err
		}
	}
	return nil
}

// ListAll fetches every readable article in enumeration order.
// Reads run in parallel, bounded by the configured concurrency.
func (r *Repository) ListAll(ctx context.Context) ([]*models.Article, error) {
	keys, err := r.Keys(ctx)
	if err != nil {
		return nil, err
	}

	fetched := make([]*models.Article, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, key := range keys {
		g.Go(func() error {
			a, err := r.Get(gctx, key)
			if r.skippable(key, err) {
				return nil
			}
			if err != nil {
				return err
			}
			fetched[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*models.Article, 0, len(fetched))
	for _, a := range fetched {
		if a != nil {
			result = append(result, a)
		}
	}
	return result, nil
}

// skippable reports whether an enumeration can pass over key.
// Corrupt records are logged; keys that vanished after listing are not.
func (r *Repository) skippable(key string, err error) bool {
	switch {
	case errors.Is(err, ErrCorrupt):
		r.logger.LogError("Skipping article %s: %v", key, err)
		return true
	case errors.Is(err, ErrNotFound):
		return true
	}
	return false
}

func validate(id string, a *models.Article) error {
	switch {
	case a == nil:
		return fmt.Errorf("%w: no article", ErrInvalidInput)
	case !ValidID(id):
		return fmt.Errorf("%w: malformed id %q", ErrInvalidInput, id)
	case strings.TrimSpace(a.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	case strings.TrimSpace(a.Content) == "":
		return fmt.Errorf("%w: content is required", ErrInvalidInput)
	case !utf8.ValidString(a.Title) || !utf8.ValidString(a.Content) || !utf8.ValidString(a.Img):
		return fmt.Errorf("%w: text must be valid UTF-8", ErrInvalidInput)
	case a.CreateDate.IsZero():
		return fmt.Errorf("%w: createDate is required", ErrInvalidInput)
	case a.CreateDate.UTC().Year() < 0 || a.CreateDate.UTC().Year() > 9999:
		return fmt.Errorf("%w: createDate year %d out of range", ErrInvalidInput, a.CreateDate.UTC().Year())
	}
	return nil
}
