package domain

import "time"

type Page struct {
	ID          string    `db:"id" json:"id"`
	ExternalID  string    `db:"page_id" json:"page_id"`
	Name        string    `db:"name" json:"name"`
	URL         string    `db:"url" json:"url"`
	Category    string    `db:"category" json:"category"`
	Followers   int       `db:"followers" json:"followers"`
	Likes       int       `db:"likes" json:"likes"`
	Description string    `db:"description" json:"description"`
	UserID      *string   `db:"user_id" json:"user_id,omitempty"`
	Configured  bool      `db:"is_configured" json:"is_configured"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Post struct {
	ID         string    `db:"id" json:"id"`
	PageID     string    `db:"page_id" json:"page_id"`
	ExternalID string    `db:"facebook_post_id" json:"facebook_post_id"`
	Content    string    `db:"content" json:"content"`
	Likes      int       `db:"likes" json:"likes"`
	Comments   int       `db:"comments" json:"comments"`
	Shares     int       `db:"shares" json:"shares"`
	PostDate   time.Time `db:"post_date" json:"post_date"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type ScrapingConfig struct {
	ID         string     `db:"id" json:"id"`
	PageID     string     `db:"page_id" json:"page_id"`
	Frequency  string     `db:"frequency" json:"frequency"`
	DataPoints []string   `db:"data_points" json:"data_points"`
	Depth      int        `db:"depth" json:"depth"`
	StartDate  *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate    *time.Time `db:"end_date" json:"end_date,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

type ScrapingStats struct {
	ID            string     `db:"id" json:"id"`
	UserID        string     `db:"user_id" json:"user_id"`
	TotalPages    int64      `db:"total_pages" json:"total_pages"`
	TotalPosts    int64      `db:"total_posts" json:"total_posts"`
	LastScraped   *time.Time `db:"last_scraped" json:"last_scraped,omitempty"`
	NextScheduled *time.Time `db:"next_scheduled" json:"next_scheduled,omitempty"`
	SuccessRate   float64    `db:"success_rate" json:"success_rate"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// PageWithPosts is the composite returned to callers; it is assembled in
// memory and never persisted as a unit.
type PageWithPosts struct {
	Page
	Posts []Post `json:"posts"`
}

// Engagement holds per-page aggregate figures. They are recomputed from the
// currently loaded post list on every call, never stored.
type Engagement struct {
	TotalPosts  int `json:"total_posts"`
	AvgLikes    int `json:"avg_likes"`
	AvgComments int `json:"avg_comments"`
	AvgShares   int `json:"avg_shares"`
}

// Engagement computes aggregate engagement over the loaded posts.
// An empty post list yields zeroes.
func (p *PageWithPosts) Engagement() Engagement {
	e := Engagement{TotalPosts: len(p.Posts)}
	if e.TotalPosts == 0 {
		return e
	}

	var likes, comments, shares int
	for _, post := range p.Posts {
		likes += post.Likes
		comments += post.Comments
		shares += post.Shares
	}

	e.AvgLikes = roundDiv(likes, e.TotalPosts)
	e.AvgComments = roundDiv(comments, e.TotalPosts)
	e.AvgShares = roundDiv(shares, e.TotalPosts)
	return e
}

func roundDiv(sum, n int) int {
	return (sum + n/2) / n
}
