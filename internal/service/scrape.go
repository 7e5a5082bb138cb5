package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"page_scraper/internal/config"
	"page_scraper/internal/domain"
	"page_scraper/internal/generator"
)

// ScrapeService coordinates one end-to-end scrape: generation, persistence
// and per-user stats bookkeeping.
type ScrapeService struct {
	generator Generator
	pages     PageStore
	posts     PostStore
	configs   ConfigStore
	stats     StatsStore
	txManager TransactionManager
	publisher Publisher
	logger    *slog.Logger
	config    config.ScrapeConfig
}

func NewScrapeService(
	gen Generator,
	pages PageStore,
	posts PostStore,
	configs ConfigStore,
	stats StatsStore,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
	cfg config.ScrapeConfig,
) *ScrapeService {
	return &ScrapeService{
		generator: gen,
		pages:     pages,
		posts:     posts,
		configs:   configs,
		stats:     stats,
		txManager: txManager,
		publisher: publisher,
		logger:    logger.With("component", "scrape"),
		config:    cfg,
	}
}

// Submit runs one scrape for the URL. The page row is the caller's primary
// interest: a failure persisting it fails the request, while post, config and
// stats writes are best effort and only logged. Submitting a URL that was
// scraped before refreshes the existing page instead of adding a duplicate.
func (s *ScrapeService) Submit(ctx context.Context, url string, userID *string) (*domain.PageWithPosts, error) {
	startTime := time.Now()

	if strings.TrimSpace(url) == "" {
		return nil, ErrEmptyURL
	}

	page, err := s.generator.Generate(url)
	if err != nil {
		if errors.Is(err, generator.ErrUnrecognizedURL) {
			return nil, ErrUnrecognizedURL
		}
		return nil, fmt.Errorf("generate page: %w", err)
	}

	if err := s.simulateDelay(ctx); err != nil {
		return nil, err
	}

	page.UserID = userID

	result := domain.ScrapeResult{
		URL:            url,
		PostsGenerated: len(page.Posts),
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		pageID, refreshed, err := s.pages.Upsert(txCtx, &page.Page)
		if err != nil {
			return fmt.Errorf("upsert page: %w", err)
		}
		page.ID = pageID
		result.Refreshed = refreshed

		if refreshed {
			if err := s.posts.DeleteByPageID(txCtx, pageID); err != nil {
				return fmt.Errorf("clear previous posts: %w", err)
			}
		}

		// A failed statement aborts the whole Postgres transaction, so
		// every best-effort write runs under its own savepoint.
		for i := range page.Posts {
			page.Posts[i].PageID = pageID
			err := s.txManager.WithSavepoint(txCtx, func(spCtx context.Context) error {
				postID, err := s.posts.Insert(spCtx, &page.Posts[i])
				if err != nil {
					return err
				}
				page.Posts[i].ID = postID
				return nil
			})
			if err != nil {
				result.PostErrors++
				s.logger.Error("failed to save post",
					"page_id", pageID,
					"post_external_id", page.Posts[i].ExternalID,
					"error", err,
				)
				continue
			}
			result.PostsPersisted++
		}

		err = s.txManager.WithSavepoint(txCtx, func(spCtx context.Context) error {
			return s.saveDefaultConfig(spCtx, pageID)
		})
		if err != nil {
			s.logger.Error("failed to save scraping config", "page_id", pageID, "error", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if userID != nil {
		if err := s.stats.Upsert(ctx, *userID, 1, int64(result.PostsPersisted)); err != nil {
			s.logger.Error("failed to update scraping stats", "user_id", *userID, "error", err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, page, result.Refreshed); err != nil {
			s.logger.Error("failed to publish scrape event", "page_id", page.ID, "error", err)
		}
	}

	result.Duration = time.Since(startTime)

	s.logger.Info("scrape completed",
		"url", url,
		"page_id", page.ID,
		"posts_generated", result.PostsGenerated,
		"posts_persisted", result.PostsPersisted,
		"post_errors", result.PostErrors,
		"refreshed", result.Refreshed,
		"duration", result.Duration,
	)

	return page, nil
}

// Retry re-runs a scrape against the URL of a previously stored page.
func (s *ScrapeService) Retry(ctx context.Context, pageID string, userID *string) (*domain.PageWithPosts, error) {
	if _, err := uuid.Parse(pageID); err != nil {
		return nil, ErrNotFound
	}

	page, err := s.pages.GetByID(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("load page: %w", err)
	}
	if page == nil {
		return nil, ErrNotFound
	}

	return s.Submit(ctx, page.URL, userID)
}

func (s *ScrapeService) saveDefaultConfig(ctx context.Context, pageID string) error {
	return s.configs.Upsert(ctx, &domain.ScrapingConfig{
		PageID:     pageID,
		Frequency:  s.config.DefaultFrequency,
		DataPoints: s.config.DefaultDataPoints,
		Depth:      s.config.DefaultDepth,
	})
}

func (s *ScrapeService) simulateDelay(ctx context.Context) error {
	if s.config.SimulatedDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.config.SimulatedDelay):
		return nil
	}
}
