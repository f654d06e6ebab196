package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/keeltekool/data-tracker/pkg/domain"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// listTopicsHandler returns all topics, newest first
func (s *Server) listTopicsHandler(w http.ResponseWriter, r *http.Request) {
	topics, err := s.store.ListTopics(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to list topics: %v", err)
		renderJSON(w, r, http.StatusInternalServerError,
			map[string]interface{}{"error": "failed to fetch topics", "topics": []domain.Topic{}})
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"topics": topics})
}

// topicRequest is the body of create and update calls
type topicRequest struct {
	Keyword string `json:"keyword"`
}

// createTopicHandler adds a new tracked keyword
func (s *Server) createTopicHandler(w http.ResponseWriter, r *http.Request) {
	var req topicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	topic, err := s.store.CreateTopic(r.Context(), req.Keyword)
	if err != nil {
		s.renderTopicError(w, r, err, "create")
		return
	}
	renderJSON(w, r, http.StatusCreated, map[string]interface{}{"topic": topic})
}

// updateTopicHandler changes the keyword of an existing topic
func (s *Server) updateTopicHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid topic ID"), http.StatusBadRequest)
		return
	}

	var req topicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	topic, err := s.store.UpdateTopic(r.Context(), id, req.Keyword)
	if err != nil {
		s.renderTopicError(w, r, err, "update")
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"topic": topic})
}

// deleteTopicHandler removes a topic
func (s *Server) deleteTopicHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid topic ID"), http.StatusBadRequest)
		return
	}

	if err := s.store.DeleteTopic(r.Context(), id); err != nil {
		s.renderTopicError(w, r, err, "delete")
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

// renderTopicError maps registry errors to HTTP codes; anything outside the
// known set is logged and surfaced as a generic 500
func (s *Server) renderTopicError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrTopicNotFound):
		renderError(w, r, err, http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidKeyword),
		errors.Is(err, domain.ErrDuplicateTopic),
		errors.Is(err, domain.ErrTopicLimit):
		renderError(w, r, err, http.StatusBadRequest)
	default:
		log.Printf("[ERROR] failed to %s topic: %v", op, err)
		renderError(w, r, fmt.Errorf("failed to %s topic", op), http.StatusInternalServerError)
	}
}

// newsHandler serves normalized news items for a topic keyword
func (s *Server) newsHandler(w http.ResponseWriter, r *http.Request) {
	topic, hours, err := s.feedParams(r)
	if err != nil {
		renderJSON(w, r, http.StatusBadRequest,
			map[string]interface{}{"error": err.Error(), "items": []domain.NewsItem{}})
		return
	}

	items, err := s.news.Fetch(r.Context(), topic, hours)
	if err != nil {
		log.Printf("[ERROR] failed to fetch news for %q: %v", topic, err)
		renderJSON(w, r, http.StatusInternalServerError,
			map[string]interface{}{"error": err.Error(), "items": []domain.NewsItem{}})
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"items": items})
}

// redditHandler serves normalized reddit items for a topic keyword
func (s *Server) redditHandler(w http.ResponseWriter, r *http.Request) {
	topic, hours, err := s.feedParams(r)
	if err != nil {
		renderJSON(w, r, http.StatusBadRequest,
			map[string]interface{}{"error": err.Error(), "items": []domain.RedditItem{}})
		return
	}

	items, err := s.reddit.Fetch(r.Context(), topic, hours)
	if err != nil {
		log.Printf("[ERROR] failed to fetch reddit for %q: %v", topic, err)
		renderJSON(w, r, http.StatusInternalServerError,
			map[string]interface{}{"error": err.Error(), "items": []domain.RedditItem{}})
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"items": items})
}

// feedHandler serves the merged dual-source fetch; one source failing still
// yields a 200 with the other source's items and a partialError notice
func (s *Server) feedHandler(w http.ResponseWriter, r *http.Request) {
	topic, hours, err := s.feedParams(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	result, err := s.agg.Fetch(r.Context(), topic, hours)
	if err != nil {
		log.Printf("[ERROR] aggregation failed for %q: %v", topic, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, result)
}

// feedParams extracts the topic keyword and recency window from the query.
// hours defaults to the configured window and accepts any positive integer.
func (s *Server) feedParams(r *http.Request) (topic string, hours int, err error) {
	topic = r.URL.Query().Get("topic")
	if topic == "" {
		return "", 0, fmt.Errorf("topic parameter is required")
	}

	hours = s.config.GetDefaultWindow()
	if hoursStr := r.URL.Query().Get("hours"); hoursStr != "" {
		hours, err = strconv.Atoi(hoursStr)
		if err != nil || hours <= 0 {
			return "", 0, fmt.Errorf("hours must be a positive integer")
		}
	}
	return topic, hours, nil
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
