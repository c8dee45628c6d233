package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bryan-buckman/redditviewer/internal/config"
	"github.com/bryan-buckman/redditviewer/internal/database"
	"github.com/bryan-buckman/redditviewer/internal/recent"
	"github.com/bryan-buckman/redditviewer/internal/reddit"
	"github.com/bryan-buckman/redditviewer/internal/server"
	"github.com/bryan-buckman/redditviewer/internal/thread"
	"github.com/bryan-buckman/redditviewer/internal/translate"
	"github.com/bryan-buckman/redditviewer/internal/workspace"
)

const shutdownTimeout = 15 * time.Second

func main() {
	log := newLogger(slog.LevelInfo)

	cfg, err := config.Load()
	must(log, err, "load configuration")
	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug logging enabled")
	}
	log.Info("configuration loaded",
		slog.String("addr", cfg.ServerAddr),
		slog.String("store", cfg.StoreBackend),
	)

	store, err := openStore(cfg, log)
	must(log, err, "open store")
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Error("store close error", slog.Any("error", cerr))
		}
	}()
	log.Info("store opened", slog.String("type", store.DatabaseType()))

	cache, err := recent.New(store, log)
	must(log, err, "load recent threads")

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	source := reddit.NewClient(reddit.Options{
		BaseURL:           cfg.RedditBaseURL,
		UserAgent:         cfg.RedditUserAgent,
		RequestsPerSecond: cfg.RedditRPS,
		HTTPClient:        httpClient,
		Logger:            log,
	})
	translator := translate.NewGoogle(translate.GoogleOptions{
		URL:               cfg.TranslateURL,
		APIKey:            cfg.TranslateAPIKey,
		Target:            cfg.TranslateTarget,
		RequestsPerSecond: cfg.TranslateRPS,
		HTTPClient:        httpClient,
		Logger:            log,
	})

	active := thread.NewStore()
	translations := translate.NewOrchestrator(active, cache, translator, cfg.TranslateConcurrency, log)
	ws := workspace.New(active, cache, source, translations, log)
	srv := server.New(ws, source, store.DatabaseType(), log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(cfg.ServerAddr); err != nil {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server error", slog.Any("error", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
	}
	log.Info("server stopped")
}

func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "redditviewer"))
	slog.SetDefault(log)
	return log
}

// openStore connects the configured persistence backend.
func openStore(cfg *config.Config, log *slog.Logger) (database.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		return database.NewPostgres(cfg.DatabaseURL)
	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return database.NewRedis(ctx, cfg.RedisURL, log)
	case config.BackendSQLite:
		return database.New(cfg.SQLitePath)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

// must logs err and exits. Startup wiring only.
func must(log *slog.Logger, err error, action string) {
	if err != nil {
		log.Error("startup failed", slog.String("action", action), slog.Any("error", err))
		os.Exit(1)
	}
}
