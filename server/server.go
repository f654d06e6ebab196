package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/keeltekool/data-tracker/pkg/domain"
)

// Server represents HTTP server instance
type Server struct {
	config  ConfigProvider
	store   TopicStore
	news    NewsFetcher
	reddit  RedditFetcher
	agg     Aggregator
	version string
	debug   bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// TopicStore is the topic registry the server exposes over CRUD endpoints
type TopicStore interface {
	ListTopics(ctx context.Context) ([]domain.Topic, error)
	CreateTopic(ctx context.Context, keyword string) (*domain.Topic, error)
	UpdateTopic(ctx context.Context, id int64, keyword string) (*domain.Topic, error)
	DeleteTopic(ctx context.Context, id int64) error
}

// NewsFetcher retrieves normalized news items for a keyword
type NewsFetcher interface {
	Fetch(ctx context.Context, keyword string, windowHours int) ([]domain.NewsItem, error)
}

// RedditFetcher retrieves normalized reddit items for a keyword
type RedditFetcher interface {
	Fetch(ctx context.Context, keyword string, windowHours int) ([]domain.RedditItem, error)
}

// Aggregator runs the dual-source fetch with partial-failure semantics
type Aggregator interface {
	Fetch(ctx context.Context, keyword string, windowHours int) (*domain.AggregateResult, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetBaseURL() string
	GetDefaultWindow() int
}

// New initializes a new server instance
func New(cfg ConfigProvider, store TopicStore, news NewsFetcher, reddit RedditFetcher, agg Aggregator, version string, debug bool) *Server {
	s := &Server{
		config:  cfg,
		store:   store,
		news:    news,
		reddit:  reddit,
		agg:     agg,
		version: version,
		debug:   debug,
		router:  routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("data-tracker", "keeltekool", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024)) // topic payloads are tiny
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	// API routes
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /topics", s.listTopicsHandler)
		r.HandleFunc("POST /topics", s.createTopicHandler)
		r.HandleFunc("PUT /topics/{id}", s.updateTopicHandler)
		r.HandleFunc("DELETE /topics/{id}", s.deleteTopicHandler)

		r.HandleFunc("GET /news", s.newsHandler)
		r.HandleFunc("GET /reddit", s.redditHandler)
		r.HandleFunc("GET /feed", s.feedHandler)
	})

	// RSS rendition of the aggregated feed for a topic
	s.router.HandleFunc("GET /rss/{topic}", s.rssHandler)
}
