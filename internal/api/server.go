package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	router *gin.Engine
	port   int
	server *http.Server
}

func NewServer(port int, handler *Handler) *Server {
	router := gin.Default()
	router.Use(requestID())

	// Setup CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	router.SetHTMLTemplate(loadTemplates())

	// Public pages
	router.GET("/", handler.Home)
	router.GET("/search", handler.Search)

	// Admin panel; unknown /admin paths fall through to NoRoute, which also
	// checks credentials before rendering the panel.
	admin := router.Group("/admin", handler.RequireAdmin)
	{
		admin.GET("", handler.AdminPanel)
		admin.POST("/saveArticle", handler.SaveArticle)
		admin.POST("/updateConfig", handler.UpdateConfig)
		admin.POST("/updateAccount", handler.UpdateAccount)
	}

	router.NoRoute(handler.NoRoute)

	api := router.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		articles := api.Group("/articles")
		{
			articles.GET("", handler.ListArticles)
			articles.GET("/search", handler.SearchArticles)
			articles.GET("/:id", handler.GetArticle)
		}
	}

	return &Server{
		router: router,
		port:   port,
	}
}

// Handler exposes the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
