package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/keeltekool/data-tracker/pkg/domain"
)

// DefaultNewsURL is the production news search endpoint base
const DefaultNewsURL = "https://news.google.com"

var (
	newsItemRe = regexp.MustCompile(`(?is)<item>(.*?)</item>`)

	// URL-shaped patterns tried in order against the description markup
	// when no media/enclosure thumbnail is present; first match wins
	descImagePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<img[^>]+src="([^"]+)"`),
		regexp.MustCompile(`(?i)(https?://[^\s"'<>]+\.(?:jpg|jpeg|png|gif|webp)[^\s"'<>]*)`),
	}
)

// NewsClient fetches and parses the news RSS search feed into normalized
// items. Parsing is defensive: the feed carries no schema guarantee, fields
// arrive HTML-escaped or CDATA-wrapped, and thumbnails move between tags
// from one revision of the upstream to the next.
type NewsClient struct {
	baseURL   string
	client    *http.Client
	userAgent string
	maxItems  int
	now       func() time.Time
}

// NewNewsClient creates a news feed client for the given endpoint base
func NewNewsClient(baseURL string, timeout time.Duration, maxItems int) *NewsClient {
	if baseURL == "" {
		baseURL = DefaultNewsURL
	}
	if maxItems <= 0 {
		maxItems = 25
	}
	return &NewsClient{
		baseURL:   baseURL,
		client:    newHTTPClient(timeout),
		userAgent: defaultUserAgent,
		maxItems:  maxItems,
		now:       time.Now,
	}
}

// Fetch retrieves news items matching the keyword, published within the
// last windowHours. Upstream order (newest-first) is preserved and output
// is capped at the client's item limit.
func (c *NewsClient) Fetch(ctx context.Context, keyword string, windowHours int) ([]domain.NewsItem, error) {
	feedURL := fmt.Sprintf("%s/rss/search?q=%s&hl=en", c.baseURL, url.QueryEscape(keyword))

	body, err := fetchBody(ctx, c.client, feedURL, c.userAgent)
	if err != nil {
		return nil, fmt.Errorf("fetch news feed: %w", err)
	}

	return c.parse(body, windowHours), nil
}

// parse walks <item> blocks in document order, skipping blocks without a
// title or link, and stops once the cap of qualifying items is reached
func (c *NewsClient) parse(body string, windowHours int) []domain.NewsItem {
	now := c.now()
	items := make([]domain.NewsItem, 0, c.maxItems)

	for _, m := range newsItemRe.FindAllStringSubmatch(body, -1) {
		block := m[1]

		title := ExtractTagText(block, "title")
		link := DecodeEntities(ExtractTagText(block, "link"))
		if title == "" || link == "" {
			continue // both are required, a partial item is useless downstream
		}

		published := now // feeds occasionally omit pubDate entirely
		if pubDate := ExtractTagText(block, "pubDate"); pubDate != "" {
			if ts, ok := parseFeedTime(pubDate); ok {
				published = ts
			}
		}
		if !WithinWindow(published, windowHours, now) {
			continue
		}

		source := DecodeEntities(ExtractTagText(block, "source"))
		if source == "" {
			source = hostLabel(link)
		}

		items = append(items, domain.NewsItem{
			ID:          MakeID("news", link),
			Title:       DecodeEntities(title),
			Source:      source,
			URL:         link,
			PublishedAt: published,
			Thumbnail:   extractThumbnail(block),
		})

		if len(items) >= c.maxItems {
			break
		}
	}
	return items
}

// extractThumbnail resolves an item's image through the ordered fallback
// chain: media:content, media:thumbnail, enclosure, then any URL-shaped
// match inside the description markup
func extractThumbnail(block string) string {
	if u := ExtractAttr(block, "media:content", "url"); u != "" {
		return u
	}
	if u := ExtractAttr(block, "media:thumbnail", "url"); u != "" {
		return u
	}
	if u := ExtractAttr(block, "enclosure", "url"); u != "" {
		return u
	}

	desc := DecodeEntities(ExtractTagText(block, "description"))
	if desc == "" {
		return ""
	}
	for _, re := range descImagePatterns {
		if m := re.FindStringSubmatch(desc); m != nil {
			return m[1]
		}
	}
	return ""
}
