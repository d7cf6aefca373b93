package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/wwwqqqzzz/blog-sub000/internal/config"
	"github.com/wwwqqqzzz/blog-sub000/internal/content/feed"
	"github.com/wwwqqqzzz/blog-sub000/internal/content/markdown"
	"github.com/wwwqqqzzz/blog-sub000/internal/content/watch"
	"github.com/wwwqqqzzz/blog-sub000/internal/db"
	"github.com/wwwqqqzzz/blog-sub000/internal/db/fulltext"
	"github.com/wwwqqqzzz/blog-sub000/internal/db/memory"
	dbRedis "github.com/wwwqqqzzz/blog-sub000/internal/db/redis"
	dbSQLite "github.com/wwwqqqzzz/blog-sub000/internal/db/sqlite"
	logpkg "github.com/wwwqqqzzz/blog-sub000/internal/logger"
	"github.com/wwwqqqzzz/blog-sub000/internal/metrics"
	"github.com/wwwqqqzzz/blog-sub000/internal/repository/cache"
	"github.com/wwwqqqzzz/blog-sub000/internal/repository/views"
	chiTransport "github.com/wwwqqqzzz/blog-sub000/internal/transport/chi"
	cataloguc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/catalog"
	healthuc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/health"
	popularityuc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/popularity"
	relateduc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/related"
	searchuc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/search"
	seriesuc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/series"
	"github.com/wwwqqqzzz/blog-sub000/internal/version"
)

// purgeInterval is how often expired rows are removed from the sqlite store.
const purgeInterval = time.Hour

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting blogdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Strings("markdown_dirs", cfg.Content.MarkdownDirs),
		zap.Int("feeds", len(cfg.Content.FeedURLs)),
	)

	store, err := openStore(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to create store", zap.Error(err))
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Storage.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Store not ready", zap.Error(err))
	}
	logger.Info("Connected to store")

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterSearchMetrics()

	// Repositories
	responseCache := cache.New(store, cfg.Storage.KeyPrefix, time.Duration(cfg.Cache.TTLSec)*time.Second, logger).
		WithRetention(time.Duration(cfg.Cache.RetentionHours) * time.Hour)
	viewStore := views.New(store, cfg.Storage.KeyPrefix).WithLogger(logger)

	// Content sources
	var sources []cataloguc.Source
	if len(cfg.Content.MarkdownDirs) > 0 {
		sources = append(sources, markdown.New(cfg.Content.MarkdownDirs, logger))
	}
	if len(cfg.Content.FeedURLs) > 0 {
		sources = append(sources, feed.New(cfg.Content.FeedURLs, nil, responseCache, logger).
			WithTimeout(time.Duration(cfg.Content.FeedTimeoutSec)*time.Second))
	}

	// Use case services
	catalogSvc := cataloguc.New(logger, sources...)
	searchSvc := searchuc.New(catalogSvc, logger).
		WithWeights(searchWeights(cfg.Search.Weights)).
		WithSnippetWindow(searchuc.SnippetWindow{Before: cfg.Search.SnippetBefore, After: cfg.Search.SnippetAfter}).
		WithDefaultLimit(cfg.Search.DefaultLimit)
	defer func() { _ = searchSvc.Close() }()
	relatedSvc := relateduc.New(catalogSvc, relateduc.NewScorer(relatedWeights(cfg.Scoring.Related)))
	popularitySvc := popularityuc.New(
		popularityuc.NewScorer(popularityWeights(cfg.Scoring.Popularity), time.Now), viewStore, logger,
	)
	seriesSvc := seriesuc.New(catalogSvc)
	healthSvc := healthuc.New(store, catalogSvc)

	reload := func(ctx context.Context, trigger string) {
		if _, err := catalogSvc.Reload(ctx, trigger); err != nil {
			logger.Warn("Content reload failed", zap.String("trigger", trigger), zap.Error(err))
			return
		}
		if err := searchSvc.Warm(ctx); err != nil {
			logger.Warn("Search index warm-up failed", zap.Error(err))
		}
	}
	reload(ctx, cataloguc.TriggerStartup)

	if cfg.Content.Watch && len(cfg.Content.MarkdownDirs) > 0 {
		w, err := watch.New(cfg.Content.MarkdownDirs,
			time.Duration(cfg.Content.WatchDebounceMs)*time.Millisecond,
			func(ctx context.Context) { reload(ctx, cataloguc.TriggerWatch) },
			logger,
		)
		if err != nil {
			logger.Fatal("Failed to watch content", zap.Error(err))
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				logger.Error("Content watcher stopped", zap.Error(err))
			}
		}()
	}
	if cfg.Content.ReloadIntervalSec > 0 {
		go every(ctx, time.Duration(cfg.Content.ReloadIntervalSec)*time.Second, func(ctx context.Context) {
			reload(ctx, cataloguc.TriggerInterval)
		})
	}
	if p, ok := store.(purger); ok {
		go every(ctx, purgeInterval, func(ctx context.Context) {
			n, err := p.Purge(ctx)
			if err != nil {
				logger.Warn("Store purge failed", zap.Error(err))
				return
			}
			logger.Debug("Purged expired keys", zap.Int64("rows", n))
		})
	}

	server := chiTransport.NewServer(chiTransport.Services{
		Catalog:    catalogSvc,
		Search:     searchSvc,
		Related:    relatedSvc,
		Popularity: popularitySvc,
		Series:     seriesSvc,
		Health:     healthSvc,
		Views:      viewStore,
	}, logger).WithLimits(cfg.Search.DefaultLimit, cfg.Search.MaxLimit)

	handler := server.Handler(
		jsonRecoverer(logger),
		chiMiddleware.RequestID,
		wideEventMiddleware(logger),
		chiTransport.BearerAuthMiddleware(chiTransport.AuthOptions{
			APIKeys:     cfg.Auth.APIKeys,
			PublicReads: cfg.Auth.PublicReads,
		}),
		metrics.Middleware(),
	)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

type purger interface {
	Purge(ctx context.Context) (int64, error)
}

func openStore(cfg config.StorageConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("redis store: %w", err)
		}
		return s, nil
	case config.DriverSQLite:
		s, err := dbSQLite.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		return s, nil
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// every runs fn on each tick until ctx is cancelled.
func every(ctx context.Context, d time.Duration, fn func(ctx context.Context)) {
	ticker := time.NewTicker(d)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}

func searchWeights(w config.FieldWeights) fulltext.Weights {
	return fulltext.Weights{Title: w.Title, Description: w.Description, Tags: w.Tags, Source: w.Source}
}

func relatedWeights(c config.RelatedConfig) relateduc.Weights {
	return relateduc.Weights{
		PerSharedTag: c.PerSharedTag,
		TagCap:       c.TagCap,
		TitleCap:     c.TitleCap,
		PerKeyword:   c.PerKeyword,
		KeywordCap:   c.KeywordCap,
		NearDays:     c.NearDays,
		NearBonus:    c.NearBonus,
		FarDays:      c.FarDays,
		FarBonus:     c.FarBonus,
	}
}

func popularityWeights(c config.PopularityConfig) popularityuc.Weights {
	steps := make([]popularityuc.RecencyStep, len(c.Recency))
	for i, s := range c.Recency {
		steps[i] = popularityuc.RecencyStep{MaxDays: s.MaxDays, Bonus: s.Bonus}
	}
	return popularityuc.Weights{
		ViewsPerPoint: c.ViewsPerPoint,
		ViewCap:       c.ViewCap,
		FeaturedBoost: c.FeaturedBoost,
		Recency:       steps,
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.CodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits one canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			ctx := logpkg.ContextWithLogger(r.Context(), logger)
			ctx = logpkg.With(ctx, zap.String("request_id", requestID))
			reqLogger := logpkg.FromContext(ctx)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("route", route),
				zap.String("query", r.URL.Query().Get("q")),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
