package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/keeltekool/data-tracker/pkg/domain"
)

// Generator renders an aggregated topic fetch as an RSS 2.0 feed, for
// users who'd rather follow a topic from a feed reader than the UI
type Generator struct {
	baseURL string
}

// NewGenerator creates a feed generator rooted at the given base URL
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GenerateRSS creates an RSS 2.0 document from one aggregation result.
// News items come first, then reddit items, each group in upstream order.
func (g *Generator) GenerateRSS(result *domain.AggregateResult, topic string) (string, error) {
	selfLink := fmt.Sprintf("%s/rss/%s", g.baseURL, topic)

	rssItems := make([]*RSSItem, 0, len(result.NewsItems)+len(result.RedditItems))
	for _, item := range result.NewsItems {
		rssItems = append(rssItems, &RSSItem{
			Title:    item.Title,
			Link:     item.URL,
			GUID:     item.ID,
			Category: item.Source,
			PubDate:  item.PublishedAt.Format(time.RFC1123Z),
		})
	}
	for _, item := range result.RedditItems {
		rssItems = append(rssItems, &RSSItem{
			Title:    item.Title,
			Link:     item.URL,
			GUID:     item.ID,
			Category: item.Subreddit,
			PubDate:  item.PublishedAt.Format(time.RFC1123Z),
		})
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         fmt.Sprintf("DataTracker - %s", topic),
			Link:          g.baseURL + "/",
			Description:   fmt.Sprintf("Recent news and reddit items for %q", topic),
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: time.Now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}
