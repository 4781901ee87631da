package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/romangod6/kvblog/internal/articles"
	"github.com/romangod6/kvblog/internal/models"
	"github.com/romangod6/kvblog/internal/search"
	"github.com/romangod6/kvblog/internal/site"
	"github.com/romangod6/kvblog/internal/utils"
)

// ArticleRepository is the part of *articles.Repository the handlers use.
type ArticleRepository interface {
	Create(ctx context.Context, title, content, img string) (*models.Article, error)
	Get(ctx context.Context, id string) (*models.Article, error)
	ListAll(ctx context.Context) ([]*models.Article, error)
	Count(ctx context.Context) (int, error)
}

type Handler struct {
	repo     ArticleRepository
	searcher search.Searcher
	settings *site.Settings
	accounts *site.Accounts
	logger   *utils.Logger
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewHandler(repo ArticleRepository, searcher search.Searcher, settings *site.Settings, accounts *site.Accounts, logger *utils.Logger) *Handler {
	return &Handler{
		repo:     repo,
		searcher: searcher,
		settings: settings,
		accounts: accounts,
		logger:   logger,
	}
}

// Public pages

func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.tmpl", h.settings.Get())
}

// Search renders the results page. A missing q searches for "".
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")

	status := http.StatusOK
	var message string

	results, err := h.searcher.Search(c.Request.Context(), query)
	if err != nil {
		h.logger.LogError("[%s] Search failed: %v", c.GetString(requestIDKey), err)
		status = http.StatusServiceUnavailable
		message = "Search is temporarily unavailable."
	}

	c.HTML(status, "search.tmpl", gin.H{
		"Query":   query,
		"Results": results,
		"Error":   message,
	})
}

func (h *Handler) NoRoute(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/admin") {
		h.RequireAdmin(c)
		if c.IsAborted() {
			return
		}
		h.AdminPanel(c)
		return
	}
	c.String(http.StatusNotFound, "Page Not Found")
}

// Admin

func (h *Handler) AdminPanel(c *gin.Context) {
	count := "unknown"
	if n, err := h.repo.Count(c.Request.Context()); err != nil {
		h.logger.LogError("[%s] Counting articles: %v", c.GetString(requestIDKey), err)
	} else {
		count = strconv.Itoa(n)
	}

	c.HTML(http.StatusOK, "admin.tmpl", gin.H{
		"Count": count,
		"User":  h.accounts.User(),
		"Site":  h.settings.Get(),
	})
}

func (h *Handler) SaveArticle(c *gin.Context) {
	reqID := c.GetString(requestIDKey)

	article, err := h.repo.Create(c.Request.Context(), c.PostForm("title"), c.PostForm("content"), c.PostForm("img"))
	switch {
	case errors.Is(err, articles.ErrInvalidInput):
		c.String(http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, articles.ErrStoreUnavailable):
		h.logger.LogError("[%s] Saving article: %v", reqID, err)
		c.String(http.StatusServiceUnavailable, "Failed to save article")
		return
	case err != nil:
		h.logger.LogError("[%s] Saving article: %v", reqID, err)
		c.String(http.StatusInternalServerError, "Failed to save article")
		return
	}

	c.Header("Location", "/api/articles/"+article.ID)
	c.String(http.StatusOK, "Article saved")
}

func (h *Handler) UpdateConfig(c *gin.Context) {
	cfg := h.settings.Update(c.PostForm("siteTitle"), c.PostForm("siteIcon"))
	h.logger.LogInfo("[%s] Site config updated: title=%q icon=%q", c.GetString(requestIDKey), cfg.Title, cfg.Icon)
	c.String(http.StatusOK, "Config updated")
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	reqID := c.GetString(requestIDKey)

	err := h.accounts.Update(c.PostForm("user"), c.PostForm("password"))
	if errors.Is(err, site.ErrInvalidAccount) {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.logger.LogError("[%s] Updating account: %v", reqID, err)
		c.String(http.StatusInternalServerError, "Failed to update account")
		return
	}

	h.logger.LogInfo("[%s] Admin account updated", reqID)
	c.String(http.StatusOK, "Account updated")
}

// JSON API

func (h *Handler) ListArticles(c *gin.Context) {
	list, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		h.logger.LogError("[%s] Listing articles: %v", c.GetString(requestIDKey), err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Failed to fetch articles"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetArticle(c *gin.Context) {
	id := c.Param("id")
	if !articles.ValidID(id) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid article ID"})
		return
	}

	article, err := h.repo.Get(c.Request.Context(), id)
	switch {
	case errors.Is(err, articles.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Article not found"})
		return
	case errors.Is(err, articles.ErrCorrupt):
		h.logger.LogError("[%s] %v", c.GetString(requestIDKey), err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Article record is corrupt"})
		return
	case err != nil:
		h.logger.LogError("[%s] Fetching article %s: %v", c.GetString(requestIDKey), id, err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Failed to fetch article"})
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *Handler) SearchArticles(c *gin.Context) {
	results, err := h.searcher.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.LogError("[%s] Search failed: %v", c.GetString(requestIDKey), err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Failed to search articles"})
		return
	}

	c.JSON(http.StatusOK, results)
}
