// Package http exposes the expense service as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	applog "paisa/internal/log"
	"paisa/internal/metrics"
	"paisa/internal/services"
)

// mutationRateLimit is the per-client budget for POST/DELETE requests
// per minute.
const mutationRateLimit = 60

// Server wires the chi router, middleware chain and handlers around the
// expense service.
type Server struct {
	http.Server
	service      *services.ExpenseService
	logger       *applog.Logger
	limiter      *rateLimiter
	now          func() time.Time
	shutdownOnce sync.Once
}

// NewServer builds a ready-to-run server on addr.
func NewServer(addr string, svc *services.ExpenseService, logger *applog.Logger) *Server {
	s := &Server{
		service: svc,
		logger:  logger.WithComponent(applog.ComponentHTTP),
		limiter: newRateLimiter(mutationRateLimit),
		now:     time.Now,
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(requestIDMiddleware)
	r.Use(applog.Middleware(s.logger))
	r.Use(s.instrument)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/expenses", func(r chi.Router) {
		r.Get("/", s.handleListExpenses)
		r.With(s.rateLimited).Post("/", s.handleCreateExpense)
		r.Get("/page", s.handleExpensePage)
		r.Get("/summary", s.handleSummary)
		r.Get("/stats", s.handleStats)
		r.Get("/{id}", s.handleGetExpense)
		r.With(s.rateLimited).Delete("/{id}", s.handleDeleteExpense)
	})

	s.Server = http.Server{
		Addr:              addr,
		Handler:           r,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Shutdown stops background goroutines and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// requestIDMiddleware tags every request with a UUID for tracing.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type contextKey string

const requestIDKey contextKey = "request_id"

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// instrument adds security headers, request logging and Prometheus
// observations around every handler.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ip := clientIP(r)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		elapsed := time.Since(start)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		metrics.ObserveRequest(r.Method, route, rw.status, elapsed)

		logger := applog.FromContext(r.Context())
		logger.InfoContext(r.Context(), "Request completed",
			applog.FieldRequestID, requestID(r.Context()),
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.status,
			applog.FieldDuration, elapsed.Milliseconds(),
			applog.FieldClientIP, ip)
	})
}

// rateLimited rejects mutating requests over the per-client budget.
func (s *Server) rateLimited(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !s.limiter.allow(ip) {
			applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
				applog.FieldClientIP, ip, applog.FieldMethod, r.Method, applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
