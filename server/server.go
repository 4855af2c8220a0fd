// Package server exposes a compiled form over HTTP: the submission endpoint
// the form posts to, its OpenAPI schema and its normalized configuration.
package server

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mikiasgoitom/better-form/compiler"
	"github.com/mikiasgoitom/better-form/flow"
	"github.com/mikiasgoitom/better-form/middleware"
)

// Source yields the active validator. *watch.Holder implements it.
type Source interface {
	Get() *compiler.SubmissionValidator
}

// Config configures the router.
type Config struct {
	Logger zerolog.Logger
	// Metrics and Gatherer enable /metrics when both are set.
	Metrics  *middleware.Metrics
	Gatherer prometheus.Gatherer
}

// NewRouter routes the form's endpoint and method to a handler that answers
// with the validated submission. The endpoint is resolved per request, so a
// reload that moves it takes effect without restarting. The form's endpoint
// and method take precedence over the built-in routes.
func NewRouter(src Source, cfg Config) chi.Router {
	r := chi.NewRouter()

	opts := []middleware.Option{middleware.WithLogger(cfg.Logger)}
	if cfg.Metrics != nil {
		opts = append(opts, middleware.WithMetrics(cfg.Metrics))
	}
	submit := middleware.Validate(src.Get, opts...)(http.HandlerFunc(accepted))

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(newLoggingMiddleware(cfg.Logger))
	r.Use(formEndpoint(src, submit))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/form/config", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, src.Get().Config())
	})
	r.Get("/form/schema", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, src.Get().OpenAPISchema())
	})
	r.Get("/form/steps", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, flow.PartitionSteps(src.Get().Config()))
	})
	if cfg.Metrics != nil && cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		form := src.Get().Config()
		if req.URL.Path != EndpointPath(form.Endpoint) {
			middleware.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		w.Header().Set("Allow", form.Method)
		middleware.WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	})

	return r
}

// formEndpoint serves submissions ahead of routing, so an endpoint that
// shares a path with a built-in route still reaches submit.
func formEndpoint(src Source, submit http.Handler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			form := src.Get().Config()
			if req.Method == form.Method && req.URL.Path == EndpointPath(form.Endpoint) {
				submit.ServeHTTP(w, req)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

func accepted(w http.ResponseWriter, r *http.Request) {
	record, _ := middleware.SubmissionFromContext(r.Context())
	middleware.WriteJSON(w, http.StatusOK, map[string]any{"data": record})
}

// EndpointPath is the URL path of a form endpoint, which may be absolute or
// relative.
func EndpointPath(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Path == "" {
		return "/" + strings.TrimPrefix(endpoint, "/")
	}
	if !strings.HasPrefix(u.Path, "/") {
		return "/" + u.Path
	}
	return u.Path
}

func newLoggingMiddleware(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
				return
			}

			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", chimw.GetReqID(r.Context())).
				Msg("http request")
		})
	}
}
