package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"page_scraper/internal/domain"
)

type PageStore struct {
	db *sqlx.DB
}

func NewPageStore(db *sqlx.DB) *PageStore {
	return &PageStore{db: db}
}

// Upsert inserts the page, or refreshes the existing row when the URL was
// scraped before. The xmax trick distinguishes a fresh insert (xmax = 0)
// from a conflict update.
func (s *PageStore) Upsert(ctx context.Context, page *domain.Page) (string, bool, error) {
	query := `
		INSERT INTO facebook_pages (
			page_id, name, url, category, followers, likes,
			description, user_id, is_configured
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (url) DO UPDATE SET
			page_id = EXCLUDED.page_id,
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			followers = EXCLUDED.followers,
			likes = EXCLUDED.likes,
			description = EXCLUDED.description,
			user_id = COALESCE(EXCLUDED.user_id, facebook_pages.user_id)
		RETURNING id, (xmax <> 0)`

	var (
		id        string
		refreshed bool
	)
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		page.ExternalID,
		page.Name,
		page.URL,
		page.Category,
		page.Followers,
		page.Likes,
		page.Description,
		page.UserID,
		page.Configured,
	).Scan(&id, &refreshed)
	if err != nil {
		return "", false, err
	}

	return id, refreshed, nil
}

func (s *PageStore) GetByID(ctx context.Context, id string) (*domain.Page, error) {
	query := `
		SELECT id, page_id, name, url, category, followers, likes,
		       description, user_id, is_configured, created_at
		FROM facebook_pages
		WHERE id = $1`

	var page domain.Page
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &page, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *PageStore) List(ctx context.Context, userID *string) ([]domain.Page, error) {
	query := `
		SELECT id, page_id, name, url, category, followers, likes,
		       description, user_id, is_configured, created_at
		FROM facebook_pages`
	args := []interface{}{}

	if userID != nil {
		query += " WHERE user_id = $1"
		args = append(args, *userID)
	}
	query += " ORDER BY created_at DESC"

	var pages []domain.Page
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &pages, query, args...)
	return pages, err
}
