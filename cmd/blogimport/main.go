// Command blogimport seeds the blog's store with articles crawled from a sitemap.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/romangod6/kvblog/config"
	"github.com/romangod6/kvblog/internal/articles"
	"github.com/romangod6/kvblog/internal/crawler"
	"github.com/romangod6/kvblog/internal/storage"
	"github.com/romangod6/kvblog/internal/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	sitemapURL := flag.String("sitemap", cfg.Importer.SitemapURL, "sitemap or sitemap index to import")
	maxPages := flag.Int("max", cfg.Importer.MaxPages, "maximum number of pages to import, 0 for all")
	delay := flag.Duration("delay", 0, "random delay between page requests")
	flag.Parse()

	if *sitemapURL == "" {
		log.Fatal("No sitemap given: set importer.sitemapURL or pass -sitemap")
	}

	logger, err := utils.NewLogger("import", cfg.Log.Dir, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, timeoutCancel := context.WithTimeout(ctx, cfg.GetImportTimeout())
	defer timeoutCancel()

	store, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	if err := store.Initialize(); err != nil {
		log.Fatalf("Failed to initialize %s store: %v", cfg.Store.Type, err)
	}

	repo := articles.NewRepository(store, logger)
	c := crawler.NewCrawler(repo, &crawler.CrawlerConfig{
		SitemapURL:     *sitemapURL,
		UserAgent:      cfg.Importer.UserAgent,
		AllowedDomains: cfg.Importer.AllowedDomains,
		MaxPages:       *maxPages,
		RandomDelay:    *delay,
		Timeout:        30 * time.Second,
	}, logger)

	logger.LogInfo("Importing %s into %s store", *sitemapURL, cfg.Store.Type)
	stats, err := c.Crawl(ctx)
	if err != nil {
		logger.LogError("Import stopped after %s: %v", stats, err)
		os.Exit(1)
	}
	logger.LogInfo("Import complete: %s", stats)
}
