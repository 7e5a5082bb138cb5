package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"page_scraper/internal/domain"
)

type PageStore interface {
	// Upsert inserts the page or, when a row for the same URL already
	// exists, refreshes it in place. The second return value reports
	// whether an existing row was refreshed.
	Upsert(ctx context.Context, page *domain.Page) (string, bool, error)
	GetByID(ctx context.Context, id string) (*domain.Page, error)
	List(ctx context.Context, userID *string) ([]domain.Page, error)
}

type PostStore interface {
	Insert(ctx context.Context, post *domain.Post) (string, error)
	DeleteByPageID(ctx context.Context, pageID string) error
	GetByPageID(ctx context.Context, pageID string) ([]domain.Post, error)
}

type ConfigStore interface {
	Upsert(ctx context.Context, cfg *domain.ScrapingConfig) error
	GetByPageID(ctx context.Context, pageID string) (*domain.ScrapingConfig, error)
}

type StatsStore interface {
	// Upsert adds the deltas to the user's running totals, creating the
	// row on first use.
	Upsert(ctx context.Context, userID string, pagesDelta, postsDelta int64) error
	GetByUserID(ctx context.Context, userID string) (*domain.ScrapingStats, error)
}

type Generator interface {
	Generate(url string) (*domain.PageWithPosts, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	// WithSavepoint runs fn so that its failure rolls back only fn's own
	// writes, leaving the surrounding transaction usable.
	WithSavepoint(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, page *domain.PageWithPosts, refreshed bool) error
	Close() error
}
