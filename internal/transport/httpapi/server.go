// Package httpapi exposes the article pipeline over HTTP.
//
//	GET  /api/fetch-article?id=<id>
//	POST /api/generate-tags   {"text": "..."}
//	GET  /healthz
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"ArticleTagger/internal/domain"
)

// ArticleService is the use case surface the handlers depend on.
type ArticleService interface {
	FetchArticle(ctx context.Context, id string) (domain.Article, error)
	GenerateTags(ctx context.Context, text string) (domain.TagSet, error)
}

// Server owns the gin engine and its handlers.
type Server struct {
	articles ArticleService
	logger   *slog.Logger
	engine   *gin.Engine
}

// NewServer registers routes and middleware.
func NewServer(articles ArticleService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{articles: articles, logger: logger}

	router := gin.New()
	router.Use(requestID(), accessLog(logger), recovery(logger))

	api := router.Group("/api")
	api.GET("/fetch-article", s.fetchArticle)
	api.POST("/generate-tags", s.generateTags)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.engine = router
	return s
}

// Handler returns the HTTP handler for the routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}
