package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"page_scraper/internal/domain"
)

type PostStore struct {
	db *sqlx.DB
}

func NewPostStore(db *sqlx.DB) *PostStore {
	return &PostStore{db: db}
}

func (s *PostStore) Insert(ctx context.Context, post *domain.Post) (string, error) {
	query := `
		INSERT INTO scraped_posts (
			facebook_post_id, page_id, content, likes, comments, shares, post_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING id`

	var id string
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		post.ExternalID,
		post.PageID,
		post.Content,
		post.Likes,
		post.Comments,
		post.Shares,
		post.PostDate,
	).Scan(&id)
	if err != nil {
		return "", err
	}

	return id, nil
}

func (s *PostStore) DeleteByPageID(ctx context.Context, pageID string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM scraped_posts WHERE page_id = $1",
		pageID,
	)
	return err
}

func (s *PostStore) GetByPageID(ctx context.Context, pageID string) ([]domain.Post, error) {
	query := `
		SELECT id, facebook_post_id, page_id, content, likes, comments,
		       shares, post_date, created_at
		FROM scraped_posts
		WHERE page_id = $1
		ORDER BY post_date DESC`

	var posts []domain.Post
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &posts, query, pageID)
	return posts, err
}
