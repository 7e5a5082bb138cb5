package domain

import "time"

// ScrapeResult summarizes one scrape submission.
type ScrapeResult struct {
	URL            string
	PostsGenerated int
	PostsPersisted int
	PostErrors     int
	Refreshed      bool
	Duration       time.Duration
}
