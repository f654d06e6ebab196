package feed

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/keeltekool/data-tracker/pkg/domain"
)

// NewsFetcher retrieves normalized news items for a keyword
type NewsFetcher interface {
	Fetch(ctx context.Context, keyword string, windowHours int) ([]domain.NewsItem, error)
}

// RedditFetcher retrieves normalized reddit items for a keyword
type RedditFetcher interface {
	Fetch(ctx context.Context, keyword string, windowHours int) ([]domain.RedditItem, error)
}

// Aggregator fans a topic fetch out to both sources in parallel and merges
// the results. One source failing degrades the response instead of failing
// it; only both sources failing is an error.
type Aggregator struct {
	news   NewsFetcher
	reddit RedditFetcher
}

// NewAggregator creates an aggregator over the two source fetchers
func NewAggregator(news NewsFetcher, reddit RedditFetcher) *Aggregator {
	return &Aggregator{news: news, reddit: reddit}
}

// Fetch runs both source fetches concurrently and joins them. The group
// carries no shared cancellation: each fetch has its own timeout, and one
// source failing must not cut the other short.
func (a *Aggregator) Fetch(ctx context.Context, keyword string, windowHours int) (*domain.AggregateResult, error) {
	var (
		newsItems   []domain.NewsItem
		redditItems []domain.RedditItem
		newsErr     error
		redditErr   error
	)

	var g errgroup.Group
	g.Go(func() error {
		newsItems, newsErr = a.news.Fetch(ctx, keyword, windowHours)
		return nil
	})
	g.Go(func() error {
		redditItems, redditErr = a.reddit.Fetch(ctx, keyword, windowHours)
		return nil
	})
	_ = g.Wait() // goroutines report through the captured errors

	switch {
	case newsErr != nil && redditErr != nil:
		return nil, fmt.Errorf("all sources failed: news: %v, reddit: %v", newsErr, redditErr)
	case newsErr != nil:
		log.Printf("[WARN] news source failed for %q: %v", keyword, newsErr)
		return &domain.AggregateResult{
			NewsItems:    []domain.NewsItem{},
			RedditItems:  redditItems,
			PartialError: "news source failed: " + newsErr.Error(),
		}, nil
	case redditErr != nil:
		log.Printf("[WARN] reddit source failed for %q: %v", keyword, redditErr)
		return &domain.AggregateResult{
			NewsItems:    newsItems,
			RedditItems:  []domain.RedditItem{},
			PartialError: "reddit source failed: " + redditErr.Error(),
		}, nil
	}

	return &domain.AggregateResult{NewsItems: newsItems, RedditItems: redditItems}, nil
}
