// Package http serves the loan calculator form and its JSON API.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires handlers and middleware into a chi router.
type Server struct {
	loans          *LoanHandler
	limiter        *RateLimiter
	logger         *slog.Logger
	metricsEnabled bool
	timeout        time.Duration
}

func NewServer(loans *LoanHandler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{loans: loans, logger: logger, timeout: 30 * time.Second}
}

// EnableMetrics mounts the Prometheus handler on /metrics.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetRateLimiter limits the calculation endpoints per client IP.
func (s *Server) SetRateLimiter(l *RateLimiter) { s.limiter = l }

// Handler returns the router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Get("/", s.loans.Index)

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(RateLimitMiddleware(s.limiter))
		}
		r.Post("/submit", s.loans.Submit)
		r.Post("/api/loan/calculate", s.loans.CalculateLoan)
	})

	return r
}
