package domain

import "time"

// NewsItem is a normalized entry from the news RSS search feed.
// ID is deterministic for a given link, so clients can keep read/saved
// state keyed by it across re-fetches.
type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
}

// RedditItem is a normalized entry from the reddit Atom search feed.
// Score and CommentsCount are always zero: the Atom format carries neither,
// and we don't fabricate values the upstream never sent.
type RedditItem struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Subreddit     string    `json:"subreddit"`
	Score         int       `json:"score"`
	CommentsCount int       `json:"commentsCount"`
	URL           string    `json:"url"`
	PublishedAt   time.Time `json:"publishedAt"`
}

// AggregateResult holds the merged output of one dual-source fetch.
// PartialError is set when exactly one source failed; the failed source
// contributes an empty list and the response is still a success.
type AggregateResult struct {
	NewsItems    []NewsItem   `json:"newsItems"`
	RedditItems  []RedditItem `json:"redditItems"`
	PartialError string       `json:"partialError,omitempty"`
}
