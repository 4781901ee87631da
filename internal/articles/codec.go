package articles

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/romangod6/kvblog/internal/models"
)

// record is the stored form of an article. Pointers distinguish a missing
// field from an empty one.
type record struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Img        *string `json:"img"`
	CreateDate *string `json:"createDate"`
}

// isoMillis is ISO-8601 UTC with exactly three fraction digits.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Encode produces the stored JSON form of a: title, content, img and
// createDate as an ISO-8601 UTC timestamp. The id is not included; it is the key.
// Millisecond timestamps always carry three fraction digits; finer ones use
// as many digits as they need.
func Encode(a *models.Article) (string, error) {
	date := formatDate(a.CreateDate)
	b, err := json.Marshal(record{
		Title:      &a.Title,
		Content:    &a.Content,
		Img:        &a.Img,
		CreateDate: &date,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode article: %w", err)
	}
	return string(b), nil
}

func formatDate(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()%int(time.Millisecond) == 0 {
		return t.Format(isoMillis)
	}
	return t.Format(time.RFC3339Nano)
}

// Decode parses a stored record into an article with the given id.
// A null or missing img decodes as "". A missing title, content or createDate
// yields ErrCorrupt.
func Decode(id, raw string) (*models.Article, error) {
	var r record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, id, err)
	}

	switch {
	case r.Title == nil:
		return nil, fmt.Errorf("%w: %s: missing title", ErrCorrupt, id)
	case r.Content == nil:
		return nil, fmt.Errorf("%w: %s: missing content", ErrCorrupt, id)
	case r.CreateDate == nil:
		return nil, fmt.Errorf("%w: %s: missing createDate", ErrCorrupt, id)
	}

	created, err := time.Parse(time.RFC3339Nano, *r.CreateDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: bad createDate: %v", ErrCorrupt, id, err)
	}

	a := &models.Article{
		ID:         id,
		Title:      *r.Title,
		Content:    *r.Content,
		CreateDate: created.UTC(),
	}
	if r.Img != nil {
		a.Img = *r.Img
	}
	return a, nil
}
