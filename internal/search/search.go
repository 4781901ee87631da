// Package search finds articles by literal substring.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/romangod6/kvblog/internal/models"
	"github.com/romangod6/kvblog/internal/utils"
)

// Searcher is what the HTTP layer queries. Linear is the only implementation;
// an indexed one can replace it without changing callers.
type Searcher interface {
	Search(ctx context.Context, query string) ([]*models.Article, error)
}

// Source supplies the articles a Linear searcher scans.
// *articles.Repository satisfies it.
type Source interface {
	ListAll(ctx context.Context) ([]*models.Article, error)
}

var _ Searcher = &Linear{}

// Linear scans every article on each query.
type Linear struct {
	src    Source
	logger *utils.Logger
}

func NewLinear(src Source, logger *utils.Logger) *Linear {
	return &Linear{src: src, logger: logger}
}

// Search returns the articles whose title or content contains query,
// in the order the source lists them. The empty query matches everything.
// If the source fails, Search returns an empty, non-nil slice and the error.
func (l *Linear) Search(ctx context.Context, query string) ([]*models.Article, error) {
	all, err := l.src.ListAll(ctx)
	if err != nil {
		l.logger.LogError("Search %q failed: %v", query, err)
		return []*models.Article{}, fmt.Errorf("search %q: %w", query, err)
	}

	results := make([]*models.Article, 0, len(all))
	for _, a := range all {
		if Matches(a, query) {
			results = append(results, a)
		}
	}

	l.logger.LogDebug("Search %q: %d of %d articles matched", query, len(results), len(all))
	return results, nil
}

// Matches reports whether query occurs verbatim in a's title or content.
// Matching is case-sensitive with no normalization.
func Matches(a *models.Article, query string) bool {
	return strings.Contains(a.Title, query) || strings.Contains(a.Content, query)
}
