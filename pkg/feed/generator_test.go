package feed

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeltekool/data-tracker/pkg/domain"
)

func TestGenerator_GenerateRSS(t *testing.T) {
	published := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	result := &domain.AggregateResult{
		NewsItems: []domain.NewsItem{
			{ID: "news-abc", Title: "Market update", Source: "Example Wire", URL: "https://example.com/market", PublishedAt: published},
		},
		RedditItems: []domain.RedditItem{
			{ID: "t3_xyz", Title: "Discussion thread", Subreddit: "r/investing", URL: "https://reddit.com/r/investing/xyz", PublishedAt: published},
		},
	}

	gen := NewGenerator("https://tracker.example.com/")
	rss, err := gen.GenerateRSS(result, "stocks")
	require.NoError(t, err)

	// declaration and channel metadata
	assert.Contains(t, rss, xml.Header[:len(xml.Header)-1])
	assert.Contains(t, rss, "DataTracker - stocks")
	assert.Contains(t, rss, `https://tracker.example.com/rss/stocks`)

	// news item first, reddit item after
	assert.Contains(t, rss, "<title>Market update</title>")
	assert.Contains(t, rss, "<guid>news-abc</guid>")
	assert.Contains(t, rss, "<category>Example Wire</category>")
	assert.Contains(t, rss, "<title>Discussion thread</title>")
	assert.Contains(t, rss, "<guid>t3_xyz</guid>")
	assert.Contains(t, rss, "<category>r/investing</category>")
	assert.Less(t, indexOf(rss, "news-abc"), indexOf(rss, "t3_xyz"))

	// output parses back as valid XML
	var parsed RSS
	require.NoError(t, xml.Unmarshal([]byte(rss), &parsed))
	require.NotNil(t, parsed.Channel)
	assert.Len(t, parsed.Channel.Items, 2)
	assert.Equal(t, "2.0", parsed.Version)
}

func TestGenerator_GenerateRSS_Empty(t *testing.T) {
	gen := NewGenerator("https://tracker.example.com")
	rss, err := gen.GenerateRSS(&domain.AggregateResult{}, "quiet-topic")
	require.NoError(t, err)

	var parsed RSS
	require.NoError(t, xml.Unmarshal([]byte(rss), &parsed))
	require.NotNil(t, parsed.Channel)
	assert.Empty(t, parsed.Channel.Items)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
