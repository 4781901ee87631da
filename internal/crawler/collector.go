// Package crawler imports articles from another site by walking its sitemap.
package crawler

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/romangod6/kvblog/internal/models"
	"github.com/romangod6/kvblog/internal/utils"
)

// maxSitemapDepth bounds how many sitemap indexes deep Crawl will follow.
const maxSitemapDepth = 3

// ArticleCreator is the part of *articles.Repository the importer writes through.
type ArticleCreator interface {
	Create(ctx context.Context, title, content, img string) (*models.Article, error)
}

type CrawlerConfig struct {
	SitemapURL     string
	UserAgent      string
	AllowedDomains []string
	// MaxPages caps the number of pages visited. Zero means no cap.
	MaxPages    int
	RandomDelay time.Duration
	Timeout     time.Duration
}

// Stats counts what happened to each page a crawl visited.
type Stats struct {
	Pages   int
	Saved   int
	Skipped int
	Failed  int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d pages: %d saved, %d skipped, %d failed", s.Pages, s.Saved, s.Skipped, s.Failed)
}

type Crawler struct {
	collector *colly.Collector
	client    *http.Client
	repo      ArticleCreator
	config    *CrawlerConfig
	logger    *utils.Logger
}

func NewCrawler(repo ArticleCreator, config *CrawlerConfig, logger *utils.Logger) *Crawler {
	c := colly.NewCollector(
		colly.UserAgent(config.UserAgent),
		colly.AllowedDomains(config.AllowedDomains...),
	)

	// Set reasonable limits
	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 2,
		RandomDelay: config.RandomDelay,
	}); err != nil {
		logger.LogError("Failed to set crawl limits: %v", err)
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c.SetRequestTimeout(timeout)

	return &Crawler{
		collector: c,
		client:    &http.Client{Timeout: timeout},
		repo:      repo,
		config:    config,
		logger:    logger,
	}
}

// Crawl visits every page listed in the configured sitemap and saves each
// one with a title and text as a new article. Pages are visited one at a
// time in sitemap order. Crawl stops early when ctx is done.
func (c *Crawler) Crawl(ctx context.Context) (Stats, error) {
	var stats Stats

	urls, err := c.collectURLs(ctx, c.config.SitemapURL, 0, make(map[string]bool))
	if err != nil {
		return stats, err
	}
	if c.config.MaxPages > 0 && len(urls) > c.config.MaxPages {
		c.logger.LogInfo("Sitemap lists %d pages, importing the first %d", len(urls), c.config.MaxPages)
		urls = urls[:c.config.MaxPages]
	}

	collector := c.collector.Clone()
	collector.OnResponse(func(r *colly.Response) {
		if ct := r.Headers.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
			c.logger.LogDebug("Skipping %s: content type %s", r.Request.URL, ct)
			stats.Skipped++
			return
		}
		c.saveArticle(ctx, r, &stats)
	})

	for idx, url := range urls {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		c.logger.LogInfo("Processing URL %d/%d: %s", idx+1, len(urls), url)
		stats.Pages++
		if err := collector.Visit(url); err != nil {
			c.logger.LogError("Error visiting %s: %v", url, err)
			stats.Failed++
		}
	}

	c.logger.LogInfo("Import finished: %s", stats)
	return stats, nil
}

func (c *Crawler) saveArticle(ctx context.Context, r *colly.Response, stats *Stats) {
	page := r.Request.URL.String()

	parsed, err := ParseHTMLContent(string(r.Body))
	if err != nil {
		c.logger.LogError("Parsing %s: %v", page, err)
		stats.Failed++
		return
	}
	if parsed.Title == "" || parsed.Content == "" {
		c.logger.LogInfo("Skipping %s: no title or no text", page)
		stats.Skipped++
		return
	}

	img := parsed.Img
	if img != "" {
		img = r.Request.AbsoluteURL(img)
	}

	article, err := c.repo.Create(ctx, parsed.Title, parsed.Content, img)
	if err != nil {
		c.logger.LogError("Error saving article from %s: %v", page, err)
		stats.Failed++
		return
	}

	c.logger.LogInfo("Successfully saved article %s: %s", article.ID, article.Title)
	stats.Saved++
}

// collectURLs returns the page URLs reachable from sitemapURL, following
// sitemap indexes. Each URL appears once, in document order.
func (c *Crawler) collectURLs(ctx context.Context, sitemapURL string, depth int, seen map[string]bool) ([]string, error) {
	if depth > maxSitemapDepth {
		return nil, fmt.Errorf("sitemap %s: nested deeper than %d indexes", sitemapURL, maxSitemapDepth)
	}
	seen[sitemapURL] = true

	sitemap, err := c.fetchSitemap(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	var urls []string
	if sitemap.IsIndex() {
		for _, child := range sitemap.Sitemaps {
			loc := strings.TrimSpace(child.Loc)
			if loc == "" || seen[loc] {
				continue
			}
			childURLs, err := c.collectURLs(ctx, loc, depth+1, seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, childURLs...)
		}
		return urls, nil
	}

	for _, u := range sitemap.URLs {
		loc := strings.TrimSpace(u.Loc)
		if loc == "" || seen[loc] {
			continue
		}
		seen[loc] = true
		urls = append(urls, loc)
	}
	c.logger.LogDebug("Sitemap %s lists %d pages", sitemapURL, len(urls))
	return urls, nil
}

func (c *Crawler) fetchSitemap(ctx context.Context, url string) (*models.Sitemap, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("sitemap %s: %w", url, err)
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching sitemap %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching sitemap %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading sitemap %s: %w", url, err)
	}

	var sitemap models.Sitemap
	if err := xml.Unmarshal(body, &sitemap); err != nil {
		return nil, fmt.Errorf("parsing sitemap %s: %w", url, err)
	}

	return &sitemap, nil
}
