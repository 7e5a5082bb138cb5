package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"page_scraper/internal/domain"
)

// HistoryService reads previously persisted scrapes back for display. It
// never touches the generator: detail views return exactly what was stored
// at scrape time.
type HistoryService struct {
	pages   PageStore
	posts   PostStore
	configs ConfigStore
	stats   StatsStore
	logger  *slog.Logger
}

func NewHistoryService(pages PageStore, posts PostStore, configs ConfigStore, stats StatsStore, logger *slog.Logger) *HistoryService {
	return &HistoryService{
		pages:   pages,
		posts:   posts,
		configs: configs,
		stats:   stats,
		logger:  logger.With("component", "history"),
	}
}

// List returns stored pages newest first, optionally restricted to one user.
func (s *HistoryService) List(ctx context.Context, userID *string) ([]domain.Page, error) {
	pages, err := s.pages.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

// Detail returns a stored page with its posts ordered by post date
// descending, or ErrNotFound.
func (s *HistoryService) Detail(ctx context.Context, pageID string) (*domain.PageWithPosts, error) {
	if _, err := uuid.Parse(pageID); err != nil {
		return nil, ErrNotFound
	}

	page, err := s.pages.GetByID(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}
	if page == nil {
		return nil, ErrNotFound
	}

	posts, err := s.posts.GetByPageID(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("get posts: %w", err)
	}

	return &domain.PageWithPosts{Page: *page, Posts: posts}, nil
}

// Config returns the stored scraping config for a page, or nil when the
// page has none.
func (s *HistoryService) Config(ctx context.Context, pageID string) (*domain.ScrapingConfig, error) {
	if _, err := uuid.Parse(pageID); err != nil {
		return nil, nil
	}

	cfg, err := s.configs.GetByPageID(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("get config: %w", err)
	}
	return cfg, nil
}

// Stats returns the user's scraping totals, or nil when the user has never
// scraped.
func (s *HistoryService) Stats(ctx context.Context, userID string) (*domain.ScrapingStats, error) {
	stats, err := s.stats.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return stats, nil
}
