package models

// Sitemap is either a <urlset> of pages or a <sitemapindex> pointing at
// further sitemaps. The root element name is not checked, so one type
// decodes both.
type Sitemap struct {
	URLs     []URL `xml:"url"`
	Sitemaps []URL `xml:"sitemap"`
}

// URL is a <url> or <sitemap> entry.
type URL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// IsIndex reports whether the document lists other sitemaps rather than pages.
func (s *Sitemap) IsIndex() bool {
	return len(s.Sitemaps) > 0 && len(s.URLs) == 0
}
