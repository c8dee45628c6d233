// Package server provides the HTTP API and handlers.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bryan-buckman/redditviewer/internal/reddit"
	"github.com/bryan-buckman/redditviewer/internal/workspace"
)

// Discoverer lists recent threads of a subreddit. reddit.Client satisfies it.
type Discoverer interface {
	Discover(ctx context.Context, subreddit string, limit int) ([]reddit.ThreadLink, error)
}

// maxUploadBytes caps the size of an import upload.
const maxUploadBytes = 64 << 20

// Server is the main HTTP server.
type Server struct {
	ws       *workspace.Workspace
	discover Discoverer
	backend  string
	logger   *slog.Logger
	router   chi.Router
	http     *http.Server
}

// New creates a new server. backend names the persistence backend reported
// by the health check.
func New(ws *workspace.Workspace, discover Discoverer, backend string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		ws:       ws,
		discover: discover,
		backend:  backend,
		logger:   logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/languages", s.handleLanguages)
		r.Get("/subreddits/{subreddit}/threads", s.handleDiscover)

		r.Route("/thread", func(r chi.Router) {
			r.Get("/", s.handleGetThread)
			r.Delete("/", s.handleClearThread)
			r.Post("/fetch", s.handleFetch)
			r.Post("/import", s.handleImport)
			r.Get("/tree", s.handleTree)
			r.Get("/editable", s.handleEditable)
			r.Get("/stats", s.handleStats)
			r.Get("/export", s.handleExport)

			r.Put("/post", s.handleEditPost)
			r.Post("/post/translation", s.handleTranslatePost)
			r.Delete("/post/translation", s.handleRevertPost)

			r.Put("/comments/{commentID}", s.handleEditComment)
			r.Delete("/comments/{commentID}", s.handleDeleteComment)
			r.Post("/comments/{commentID}/translation", s.handleTranslateComment)
			r.Delete("/comments/{commentID}/translation", s.handleRevertComment)

			r.Post("/translate-all", s.handleTranslateAll)
			r.Post("/revert-all", s.handleRevertAll)
		})

		r.Route("/recent", func(r chi.Router) {
			r.Get("/", s.handleListRecent)
			r.Delete("/", s.handleClearRecent)
			r.Put("/open", s.handleSetRecentOpen)
			r.Post("/{threadID}/load", s.handleLoadRecent)
			r.Delete("/{threadID}", s.handleRemoveRecent)
		})
	})

	s.router = r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("server starting", slog.String("addr", addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
