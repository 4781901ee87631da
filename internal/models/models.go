package models

import "time"

// Article is a single blog post.
// ID is assigned by the repository and is not part of the stored record.
type Article struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Img        string    `json:"img"`
	CreateDate time.Time `json:"createDate"`
}

// SiteConfig holds the values the home page is rendered with.
type SiteConfig struct {
	Title string `json:"siteTitle"`
	Icon  string `json:"siteIcon"`
}
