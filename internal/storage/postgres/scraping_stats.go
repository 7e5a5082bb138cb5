package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"page_scraper/internal/domain"
)

type StatsStore struct {
	db *sqlx.DB
}

func NewStatsStore(db *sqlx.DB) *StatsStore {
	return &StatsStore{db: db}
}

// Upsert adds the deltas to the user's running totals. The first scrape for
// a user creates the row with a 100% success rate; later scrapes leave the
// rate untouched since failed scrapes never reach this table.
func (s *StatsStore) Upsert(ctx context.Context, userID string, pagesDelta, postsDelta int64) error {
	query := `
		INSERT INTO scraping_stats (
			user_id, total_pages, total_posts, last_scraped, success_rate
		) VALUES (
			$1, $2, $3, now(), 100
		)
		ON CONFLICT (user_id) DO UPDATE SET
			total_pages = scraping_stats.total_pages + EXCLUDED.total_pages,
			total_posts = scraping_stats.total_posts + EXCLUDED.total_posts,
			last_scraped = EXCLUDED.last_scraped,
			updated_at = now()`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, userID, pagesDelta, postsDelta)
	return err
}

func (s *StatsStore) GetByUserID(ctx context.Context, userID string) (*domain.ScrapingStats, error) {
	query := `
		SELECT id, user_id, total_pages, total_posts, last_scraped,
		       next_scheduled, success_rate, created_at, updated_at
		FROM scraping_stats
		WHERE user_id = $1`

	var stats domain.ScrapingStats
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &stats, query, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
