package models

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapDecode(t *testing.T) {
	const urlset = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/a</loc><lastmod>2024-01-01</lastmod></url>
  <url><loc>https://example.com/b</loc></url>
</urlset>`

	var s Sitemap
	require.NoError(t, xml.Unmarshal([]byte(urlset), &s))
	assert.False(t, s.IsIndex())
	require.Len(t, s.URLs, 2)
	assert.Equal(t, "https://example.com/a", s.URLs[0].Loc)
	assert.Equal(t, "2024-01-01", s.URLs[0].LastMod)

	const index = `<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>https://example.com/posts.xml</loc></sitemap>
</sitemapindex>`

	var idx Sitemap
	require.NoError(t, xml.Unmarshal([]byte(index), &idx))
	assert.True(t, idx.IsIndex())
	assert.Equal(t, "https://example.com/posts.xml", idx.Sitemaps[0].Loc)
}
