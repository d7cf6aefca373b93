package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/search/request"
	logpkg "github.com/wwwqqqzzz/blog-sub000/internal/logger"
	cataloguc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/catalog"
	healthuc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/health"
	popularityuc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/popularity"
	relateduc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/related"
	searchuc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/search"
	seriesuc "github.com/wwwqqqzzz/blog-sub000/internal/usecase/series"
)

// BasePath prefixes every API route except /health and /metrics.
const BasePath = "/api/v1"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// ViewRecorder reads and increments per-post view counters.
type ViewRecorder interface {
	Increment(ctx context.Context, link string) (int64, error)
	Get(ctx context.Context, link string) (int64, error)
}

// Services bundles the use cases served over HTTP.
type Services struct {
	Catalog    *cataloguc.Service
	Search     *searchuc.Service
	Related    *relateduc.Service
	Popularity *popularityuc.Service
	Series     *seriesuc.Service
	Health     *healthuc.Service
	Views      ViewRecorder
}

// Server exposes the content engine as a JSON API.
type Server struct {
	catalog       *cataloguc.Service
	search        *searchuc.Service
	related       *relateduc.Service
	popularity    *popularityuc.Service
	series        *seriesuc.Service
	health        *healthuc.Service
	views         ViewRecorder
	defaultLimit  int
	maxLimit      int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(svc Services, logger *zap.Logger) *Server {
	s := &Server{
		catalog:      svc.Catalog,
		search:       svc.Search,
		related:      svc.Related,
		popularity:   svc.Popularity,
		series:       svc.Series,
		health:       svc.Health,
		views:        svc.Views,
		defaultLimit: request.DefaultLimit,
		maxLimit:     request.MaxLimit,
		logger:       logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrPostNotFound, http.StatusNotFound, CodePostNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeCollectionNotFound),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, CodeInvalidQuery),
		sentinelHandler(domain.ErrCatalogEmpty, http.StatusServiceUnavailable, CodeCatalogEmpty),
	}
	return s
}

// WithLimits overrides the default and maximum result counts.
func (s *Server) WithLimits(defaultLimit, maxLimit int) *Server {
	if maxLimit > 0 && maxLimit <= request.MaxLimit {
		s.maxLimit = maxLimit
	}
	if defaultLimit > 0 && defaultLimit <= s.maxLimit {
		s.defaultLimit = defaultLimit
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route(BasePath, func(r chi.Router) {
		r.Get("/posts", s.ListPosts)
		r.Get("/post", s.GetPost)
		r.Get("/tags", s.ListTags)
		r.Get("/collections", s.ListCollections)
		r.Get("/collections/{name}", s.GetCollection)
		r.Get("/collections/{name}/navigation", s.GetNavigation)
		r.Get("/search", s.Search)
		r.Get("/related", s.Related)
		r.Get("/popular", s.Popular)
		r.Get("/views", s.GetViews)
		r.Post("/views", s.RecordView)
		r.Post("/reload", s.Reload)
	})
}

// Handler returns a router with the API mounted and the given middlewares applied.
func (s *Server) Handler(middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeBadRequest, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})
	s.Routes(r)
	return r
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// Reload handles POST /reload.
func (s *Server) Reload(w http.ResponseWriter, r *http.Request) {
	ctx := logpkg.With(r.Context(), zap.String("trigger", cataloguc.TriggerAPI))
	b, err := s.catalog.Reload(ctx, cataloguc.TriggerAPI)
	if err != nil {
		logpkg.FromContext(ctx).Warn("Reload failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, CodeReloadFailed, "no content source could be loaded")
		return
	}
	if err := s.search.Warm(ctx); err != nil {
		logpkg.FromContext(ctx).Warn("Search index warm-up failed", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, ReloadResponse{
		Posts:       b.Len(),
		Tags:        len(b.Tags()),
		Collections: len(b.Collections()),
		Fingerprint: b.Fingerprint(),
		LoadedAt:    b.LoadedAt().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrPostNotFound,
		domain.ErrNotFound,
		domain.ErrInvalidQuery,
		domain.ErrCatalogEmpty,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Debug("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
}
