// Package server provides the HTTP JSON API over the jobfit engine.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/jobfit/internal/engine"
	"github.com/jonathan/jobfit/internal/logging"
	"github.com/jonathan/jobfit/internal/metrics"
	"github.com/jonathan/jobfit/internal/server/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 2 << 20

// Options configures a Server
type Options struct {
	Port      int
	Engine    *engine.Engine
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer // served on /metrics; prometheus.DefaultGatherer when nil
	RateLimit *ratelimit.Config   // nil disables rate limiting
}

// Server represents the HTTP server
type Server struct {
	engine      *engine.Engine
	httpServer  *http.Server
	handler     http.Handler
	logger      *zap.Logger
	metrics     *metrics.Metrics
	rateLimiter *ratelimit.Limiter
}

// New creates a new server instance
func New(opts Options) (*Server, error) {
	if opts.Engine == nil {
		return nil, errors.New("server: engine is required")
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		engine:  opts.Engine,
		logger:  logging.For(opts.Logger, "server"),
		metrics: opts.Metrics,
	}
	if opts.RateLimit != nil {
		s.rateLimiter = ratelimit.NewLimiter(opts.RateLimit)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /assess", s.handleAssess)
	mux.HandleFunc("POST /stage", s.handleStage)
	mux.HandleFunc("POST /extract", s.handleExtract)

	mux.HandleFunc("POST /bullets/analyze", s.handleAnalyzeBullets)
	mux.HandleFunc("POST /bullets/analyze-set", s.handleAnalyzeSet)
	mux.HandleFunc("POST /bullets/autofix", s.handleAutoFix)
	mux.HandleFunc("POST /bullets/select", s.handleSelect)

	mux.HandleFunc("POST /verify", s.handleVerify)
	mux.HandleFunc("POST /spin", s.handleSpin)
	mux.HandleFunc("GET /spin/examples/{stage}", s.handleSpinExamples)

	mux.HandleFunc("GET /library", s.handleListLibrary)
	mux.HandleFunc("POST /library", s.handleCreateLibraryItem)
	mux.HandleFunc("POST /library/import", s.handleImportLibrary)
	mux.HandleFunc("GET /library/stats", s.handleLibraryStats)
	mux.HandleFunc("GET /library/{id}", s.handleGetLibraryItem)
	mux.HandleFunc("PUT /library/{id}", s.handleUpdateLibraryItem)
	mux.HandleFunc("DELETE /library/{id}", s.handleDeleteLibraryItem)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	var h http.Handler = s.withCORS(mux)
	if s.rateLimiter != nil {
		h = s.withRateLimit(h)
	}
	s.handler = s.withLogging(h)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the full middleware chain, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.stop()
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.stop()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) stop() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients over their per-endpoint budget
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
		}
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}
	s.logger.Warn("rate limit exceeded", zap.String("client", clientID(r)), zap.String("path", r.URL.Path))
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// clientID is the remote IP. Forwarded headers are not trusted.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs each request and counts it by route and status
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		if s.metrics != nil {
			s.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		}
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("route", route),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)))
	})
}
