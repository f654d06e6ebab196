package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// defaultUserAgent identifies us to the upstreams; reddit in particular
// rejects requests without a browser-like agent from cloud networks
const defaultUserAgent = "Mozilla/5.0 (compatible; DataTracker/1.0)"

// newHTTPClient builds the client both feed fetchers share. The timeout
// bounds the whole request; on expiry the underlying connection is
// released, nothing leaks past the deadline.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// fetchBody retrieves the raw response body from a feed URL. Non-2xx
// responses are errors; the body is always closed.
func fetchBody(ctx context.Context, client *http.Client, feedURL, userAgent string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

// feedTimeLayouts in the order the upstreams actually use them: RSS
// pubDate variants first, then Atom timestamps
var feedTimeLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02 15:04:05",
}

// parseFeedTime parses a publish timestamp best-effort
func parseFeedTime(s string) (time.Time, bool) {
	for _, layout := range feedTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// hostLabel derives a source label from a link when the feed doesn't
// provide one: the hostname with a leading "www." stripped
func hostLabel(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
