package models

import "time"

// NewArticle creates an article stamped with now, in UTC with millisecond
// precision so the timestamp survives the ISO-8601 record encoding unchanged.
func NewArticle(title, content, img string, now time.Time) *Article {
	return &Article{
		Title:      title,
		Content:    content,
		Img:        img,
		CreateDate: now.UTC().Truncate(time.Millisecond),
	}
}

// Equal reports whether a and b hold the same values.
func (a *Article) Equal(b *Article) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID &&
		a.Title == b.Title &&
		a.Content == b.Content &&
		a.Img == b.Img &&
		a.CreateDate.Equal(b.CreateDate)
}
