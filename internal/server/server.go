package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"page_scraper/internal/domain"
)

// Scraper runs one scrape submission.
type Scraper interface {
	Submit(ctx context.Context, url string, userID *string) (*domain.PageWithPosts, error)
	Retry(ctx context.Context, pageID string, userID *string) (*domain.PageWithPosts, error)
}

// History reads previously stored scrapes.
type History interface {
	List(ctx context.Context, userID *string) ([]domain.Page, error)
	Detail(ctx context.Context, pageID string) (*domain.PageWithPosts, error)
	Config(ctx context.Context, pageID string) (*domain.ScrapingConfig, error)
	Stats(ctx context.Context, userID string) (*domain.ScrapingStats, error)
}

type Server struct {
	scraper Scraper
	history History
	logger  *slog.Logger
}

func New(scraper Scraper, history History, logger *slog.Logger) *Server {
	return &Server{
		scraper: scraper,
		history: history,
		logger:  logger.With("component", "http"),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)
	r.Use(identityMiddleware)

	r.Post("/api/scrape", s.handleScrape)
	r.Get("/api/pages", s.handleListPages)
	r.Get("/api/pages/{id}", s.handlePageDetail)
	r.Get("/api/pages/{id}/config", s.handlePageConfig)
	r.Post("/api/pages/{id}/retry", s.handleRetry)
	r.Get("/api/stats", s.handleStats)

	return r
}
