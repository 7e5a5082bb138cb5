package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"page_scraper/internal/domain"
)

// ErrUnrecognizedURL is returned when the URL does not point at a supported
// social domain.
var ErrUnrecognizedURL = errors.New("unrecognized page url")

var domainMarkers = []string{"facebook.com/", "fb.com/"}

var categories = []string{"Business", "Community"}

var postTemplates = []string{
	"Check out our latest updates! #%s",
	"Thank you to all our followers for your continued support! We couldn't do this without you.",
	"We're excited to announce some big changes coming soon. Stay tuned for more information!",
	"Happy to share that we've reached a new milestone. Thanks to everyone who made this possible!",
	"Looking for feedback on our recent changes. Let us know what you think in the comments below!",
	"Join us this weekend for a special event. We'd love to see you there!",
	"New product alert! We've just launched something we think you'll love.",
	"Throwback to when we first started this journey. How time flies!",
	"Congratulations to our team for their hard work on our latest project.",
	"We're hiring! Check out our website for more details on open positions.",
}

const (
	minFollowers = 1000
	maxFollowers = 50999
	minPageLikes = 800
	maxPageLikes = 40799

	minPosts = 3
	maxPosts = 5

	minPostLikes    = 10
	maxPostLikes    = 509
	minPostComments = 5
	maxPostComments = 104
	minPostShares   = 1
	maxPostShares   = 50

	maxPostAgeDays = 30
)

// Generator fabricates page profiles and posts for a submitted URL. All
// randomness flows through the injected rand source so output is reproducible
// under a fixed seed.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

func New(rng *rand.Rand, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{rng: rng, now: now}
}

// Generate derives a page profile and 3-5 posts from the URL. It returns
// ErrUnrecognizedURL when the URL carries no supported domain marker.
func (g *Generator) Generate(url string) (*domain.PageWithPosts, error) {
	if !recognized(url) {
		return nil, ErrUnrecognizedURL
	}

	now := g.now()
	name := pageName(url)

	page := domain.PageWithPosts{
		Page: domain.Page{
			ExternalID:  "fb_" + uuid.NewString(),
			Name:        name,
			URL:         url,
			Category:    categories[g.rng.Intn(len(categories))],
			Followers:   g.between(minFollowers, maxFollowers),
			Likes:       g.between(minPageLikes, maxPageLikes),
			Description: fmt.Sprintf("This is a simulated page for %s.", name),
			CreatedAt:   now,
		},
	}

	count := g.between(minPosts, maxPosts)
	for i := 0; i < count; i++ {
		post := domain.Post{
			ExternalID: fmt.Sprintf("post_%d_%s", i, uuid.NewString()),
			Content:    g.postContent(name),
			Likes:      g.between(minPostLikes, maxPostLikes),
			Comments:   g.between(minPostComments, maxPostComments),
			Shares:     g.between(minPostShares, maxPostShares),
			PostDate:   now.AddDate(0, 0, -g.rng.Intn(maxPostAgeDays)),
			CreatedAt:  now,
		}
		page.Posts = append(page.Posts, post)
	}

	sortPostsByDateDesc(page.Posts)

	return &page, nil
}

func recognized(url string) bool {
	for _, marker := range domainMarkers {
		if strings.Contains(url, marker) {
			return true
		}
	}
	return false
}

// pageName turns the last path segment of the URL into a display name:
// first rune upper-cased, a space inserted before every internal upper-case
// letter, surrounding whitespace trimmed.
func pageName(url string) string {
	trimmed := strings.TrimRight(url, "/")
	segment := trimmed
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		segment = trimmed[idx+1:]
	}

	var sb strings.Builder
	for i, r := range segment {
		if i == 0 {
			sb.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			sb.WriteRune(' ')
		}
		sb.WriteRune(r)
	}

	return strings.TrimSpace(sb.String())
}

func (g *Generator) postContent(name string) string {
	template := postTemplates[g.rng.Intn(len(postTemplates))]
	if strings.Contains(template, "%s") {
		hashtag := strings.ReplaceAll(name, " ", "")
		return fmt.Sprintf(template, hashtag)
	}
	return template
}

// between draws uniformly from [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func sortPostsByDateDesc(posts []domain.Post) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].PostDate.After(posts[j].PostDate)
	})
}
