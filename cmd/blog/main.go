package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/romangod6/kvblog/config"
	"github.com/romangod6/kvblog/internal/api"
	"github.com/romangod6/kvblog/internal/articles"
	"github.com/romangod6/kvblog/internal/models"
	"github.com/romangod6/kvblog/internal/search"
	"github.com/romangod6/kvblog/internal/site"
	"github.com/romangod6/kvblog/internal/storage"
	"github.com/romangod6/kvblog/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.NewLogger("blog", cfg.Log.Dir, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage
	store, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	if err := store.Initialize(); err != nil {
		log.Fatalf("Failed to initialize %s store: %v", cfg.Store.Type, err)
	}

	repo := articles.NewRepository(store, logger, articles.WithConcurrency(cfg.Search.Concurrency))

	settings := site.NewSettings(models.SiteConfig{Title: cfg.Site.Title, Icon: cfg.Site.Icon})
	accounts, err := site.NewAccounts(cfg.Admin.User, cfg.Admin.Password, cfg.Admin.MinPasswordLength, cfg.Admin.BcryptCost)
	if err != nil {
		log.Fatalf("Invalid admin account: %v", err)
	}

	handler := api.NewHandler(repo, search.NewLinear(repo, logger), settings, accounts, logger)
	server := api.NewServer(cfg.Server.Port, handler)

	// Start the server
	go func() {
		logger.LogInfo("Starting blog on port %d with %s store", cfg.Server.Port, cfg.Store.Type)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown
	waitForShutdown(cancel, server, cfg.GetShutdownTimeout(), logger)
}

func waitForShutdown(cancel context.CancelFunc, server *api.Server, timeout time.Duration, logger *utils.Logger) {
	// Handle system signals for shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	logger.LogInfo("Shutting down...")
	cancel()

	// Graceful server shutdown
	ctx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.LogError("Error shutting down server: %v", err)
	}
	logger.LogInfo("Server shut down gracefully")
}
