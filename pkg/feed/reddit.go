package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/keeltekool/data-tracker/pkg/domain"
)

// DefaultRedditURL is the production reddit search endpoint base
const DefaultRedditURL = "https://www.reddit.com"

var redditEntryRe = regexp.MustCompile(`(?is)<entry>(.*?)</entry>`)

// RedditClient fetches and parses the reddit Atom search feed. The Atom
// format carries no score or comment counts, so those are always zero in
// the normalized items; that's an upstream capability gap, not something
// to backfill with guesses.
type RedditClient struct {
	baseURL   string
	client    *http.Client
	userAgent string
	maxItems  int
	now       func() time.Time
}

// NewRedditClient creates a reddit feed client for the given endpoint base
func NewRedditClient(baseURL string, timeout time.Duration, maxItems int) *RedditClient {
	if baseURL == "" {
		baseURL = DefaultRedditURL
	}
	if maxItems <= 0 {
		maxItems = 25
	}
	return &RedditClient{
		baseURL:   baseURL,
		client:    newHTTPClient(timeout),
		userAgent: defaultUserAgent,
		maxItems:  maxItems,
		now:       time.Now,
	}
}

// Fetch retrieves reddit posts matching the keyword, published within the
// last windowHours, newest first as the upstream returns them.
func (c *RedditClient) Fetch(ctx context.Context, keyword string, windowHours int) ([]domain.RedditItem, error) {
	feedURL := fmt.Sprintf("%s/search.rss?q=%s&sort=new&limit=%d", c.baseURL, url.QueryEscape(keyword), c.maxItems)

	body, err := fetchBody(ctx, c.client, feedURL, c.userAgent)
	if err != nil {
		return nil, fmt.Errorf("fetch reddit feed: %w", err)
	}

	return c.parse(body, windowHours), nil
}

// parse walks <entry> blocks in document order. The post link lives in an
// href attribute, not inner text, and the subreddit comes from the category
// term attribute.
func (c *RedditClient) parse(body string, windowHours int) []domain.RedditItem {
	now := c.now()
	items := make([]domain.RedditItem, 0, c.maxItems)

	for _, m := range redditEntryRe.FindAllStringSubmatch(body, -1) {
		block := m[1]

		title := ExtractTagText(block, "title")
		link := ExtractAttr(block, "link", "href")
		if title == "" || link == "" {
			continue
		}

		published := now
		if updated := ExtractTagText(block, "updated"); updated != "" {
			if ts, ok := parseFeedTime(updated); ok {
				published = ts
			}
		}
		if !WithinWindow(published, windowHours, now) {
			continue
		}

		// the feed's native id is stable, prefer it over hashing the link
		id := ExtractTagText(block, "id")
		if id == "" {
			id = MakeID("reddit", link)
		}

		subreddit := ExtractAttr(block, "category", "term")
		if subreddit == "" {
			subreddit = "reddit"
		}
		if !strings.HasPrefix(subreddit, "r/") {
			subreddit = "r/" + subreddit
		}

		items = append(items, domain.RedditItem{
			ID:          id,
			Title:       DecodeEntities(title),
			Subreddit:   subreddit,
			URL:         link,
			PublishedAt: published,
		})

		if len(items) >= c.maxItems {
			break
		}
	}
	return items
}
