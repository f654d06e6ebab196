package feed

import "time"

// WithinWindow reports whether an item published at the given time falls
// inside the recency window ending at now. Future-dated items (clock skew
// upstream) are always within the window.
func WithinWindow(published time.Time, windowHours int, now time.Time) bool {
	return now.Sub(published).Hours() <= float64(windowHours)
}
