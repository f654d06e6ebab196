package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/keeltekool/data-tracker/pkg/feed"
)

// rssHandler serves the aggregated topic feed as RSS 2.0, so a topic can be
// followed from a regular feed reader. Partial upstream failure still
// produces a feed with whatever the surviving source returned.
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	topic := r.PathValue("topic")
	if topic == "" {
		http.Error(w, "topic is required", http.StatusBadRequest)
		return
	}

	hours := s.config.GetDefaultWindow()
	if hoursStr := r.URL.Query().Get("hours"); hoursStr != "" {
		h, err := strconv.Atoi(hoursStr)
		if err != nil || h <= 0 {
			http.Error(w, "hours must be a positive integer", http.StatusBadRequest)
			return
		}
		hours = h
	}

	result, err := s.agg.Fetch(r.Context(), topic, hours)
	if err != nil {
		log.Printf("[ERROR] failed to aggregate for RSS %q: %v", topic, err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	generator := feed.NewGenerator(s.config.GetBaseURL())
	rss, err := generator.GenerateRSS(result, topic)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
