package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"page_scraper/internal/domain"
	"page_scraper/internal/service"
)

type scrapeRequest struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// pageDetailResponse carries the stored page plus the engagement block,
// recomputed from the post list on every request.
type pageDetailResponse struct {
	domain.PageWithPosts
	Stats domain.Engagement `json:"stats"`
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "URL is required")
		return
	}

	page, err := s.scraper.Submit(r.Context(), req.URL, userIDFromContext(r.Context()))
	if err != nil {
		s.respondScrapeError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, pageDetailResponse{PageWithPosts: *page, Stats: page.Engagement()})
}

func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "id")

	page, err := s.scraper.Retry(r.Context(), pageID, userIDFromContext(r.Context()))
	if err != nil {
		s.respondScrapeError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, pageDetailResponse{PageWithPosts: *page, Stats: page.Engagement()})
}

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := s.history.List(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.respondInternal(w, err)
		return
	}
	if pages == nil {
		pages = []domain.Page{}
	}

	s.respondJSON(w, http.StatusOK, pages)
}

func (s *Server) handlePageDetail(w http.ResponseWriter, r *http.Request) {
	page, err := s.history.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "page not found")
			return
		}
		s.respondInternal(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, pageDetailResponse{PageWithPosts: *page, Stats: page.Engagement()})
}

func (s *Server) handlePageConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.history.Config(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondInternal(w, err)
		return
	}
	if cfg == nil {
		s.respondError(w, http.StatusNotFound, "config not found")
		return
	}

	s.respondJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	if userID == nil {
		s.respondError(w, http.StatusBadRequest, "user identity required")
		return
	}

	stats, err := s.history.Stats(r.Context(), *userID)
	if err != nil {
		s.respondInternal(w, err)
		return
	}
	if stats == nil {
		s.respondError(w, http.StatusNotFound, "no scraping stats yet")
		return
	}

	s.respondJSON(w, http.StatusOK, stats)
}

// respondScrapeError maps submission failures onto the wire: validation
// problems are the caller's fault, anything else is internal.
func (s *Server) respondScrapeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyURL):
		s.respondError(w, http.StatusBadRequest, "URL is required")
	case errors.Is(err, service.ErrUnrecognizedURL):
		s.respondError(w, http.StatusBadRequest, "Failed to scrape page. Invalid URL or page not accessible.")
	case errors.Is(err, service.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "page not found")
	default:
		s.respondInternal(w, err)
	}
}

func (s *Server) respondInternal(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", "error", err)
	s.respondError(w, http.StatusInternalServerError, "Internal server error")
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
