package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"page_scraper/internal/domain"
)

type ConfigStore struct {
	db *sqlx.DB
}

func NewConfigStore(db *sqlx.DB) *ConfigStore {
	return &ConfigStore{db: db}
}

// Upsert writes the page's scraping config, keeping one row per page.
func (s *ConfigStore) Upsert(ctx context.Context, cfg *domain.ScrapingConfig) error {
	query := `
		INSERT INTO scraping_configs (
			page_id, frequency, data_points, depth, start_date, end_date
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		ON CONFLICT (page_id) DO UPDATE SET
			frequency = EXCLUDED.frequency,
			data_points = EXCLUDED.data_points,
			depth = EXCLUDED.depth,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			updated_at = now()`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		cfg.PageID,
		cfg.Frequency,
		pq.Array(cfg.DataPoints),
		cfg.Depth,
		cfg.StartDate,
		cfg.EndDate,
	)
	return err
}

type configRow struct {
	ID         string         `db:"id"`
	PageID     string         `db:"page_id"`
	Frequency  string         `db:"frequency"`
	DataPoints pq.StringArray `db:"data_points"`
	Depth      int            `db:"depth"`
	StartDate  *time.Time     `db:"start_date"`
	EndDate    *time.Time     `db:"end_date"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (s *ConfigStore) GetByPageID(ctx context.Context, pageID string) (*domain.ScrapingConfig, error) {
	query := `
		SELECT id, page_id, frequency, data_points, depth,
		       start_date, end_date, created_at, updated_at
		FROM scraping_configs
		WHERE page_id = $1`

	var row configRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, pageID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &domain.ScrapingConfig{
		ID:         row.ID,
		PageID:     row.PageID,
		Frequency:  row.Frequency,
		DataPoints: row.DataPoints,
		Depth:      row.Depth,
		StartDate:  row.StartDate,
		EndDate:    row.EndDate,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}
