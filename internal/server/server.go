// Package server exposes the matching and generation pipeline over a thin
// HTTP REST API.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mathieu/applyassist/internal/pipeline"
	"github.com/mathieu/applyassist/internal/server/ratelimit"
	"github.com/mathieu/applyassist/internal/types"
)

// OfferSource supplies the offer catalog for ranking requests
type OfferSource interface {
	ListOffers(ctx context.Context) ([]types.RawOffer, error)
}

// StaticOffers is an OfferSource over an in-memory catalog, used when
// offers come from a JSON file instead of the database.
type StaticOffers []types.RawOffer

// ListOffers implements OfferSource
func (s StaticOffers) ListOffers(context.Context) ([]types.RawOffer, error) {
	return s, nil
}

// ApplicationStore persists generated letters. A nil store disables
// persistence.
type ApplicationStore interface {
	SaveApplication(ctx context.Context, candidateName, offerID string, letter types.GeneratedLetter) (uuid.UUID, error)
}

// Config holds server configuration
type Config struct {
	ListenAddr string
	TopN       int
	RateLimit  *ratelimit.Config // nil for defaults
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	coordinator *pipeline.Coordinator
	source      OfferSource
	store       ApplicationStore
	topN        int
	limiter     *ratelimit.Limiter
	logger      *zap.Logger
}

// New creates a new server instance. store may be nil.
func New(cfg Config, coordinator *pipeline.Coordinator, source OfferSource, store ApplicationStore, logger *zap.Logger) *Server {
	if cfg.TopN <= 0 {
		cfg.TopN = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		coordinator: coordinator,
		source:      source,
		store:       store,
		topN:        cfg.TopN,
		limiter:     ratelimit.NewLimiter(cfg.RateLimit),
		logger:      logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /profiles", s.handleParseProfile)
	mux.HandleFunc("POST /rank", s.handleRank)
	mux.HandleFunc("POST /letters", s.handleGenerateLetter)
	mux.HandleFunc("POST /offers/fetch", s.handleFetchOffer)

	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.withLogging(s.withRateLimit(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // generation walks a provider chain
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the configured HTTP handler, used by tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT/SIGTERM,
// then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.limiter.Stop()
	s.logger.Info("server stopped")
	return nil
}

// withRateLimit rejects requests over the per-client budget with 429
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.limiter.Allow(clientIP(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds())+1))
			s.logger.Warn("request rate limited",
				zap.String("client", clientIP(r)),
				zap.String("path", r.URL.Path),
			)
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP identifies the caller, preferring the first X-Forwarded-For hop
// when the server sits behind a proxy.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging tags each request with an ID and logs its outcome
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r)

		s.logger.Info("request handled",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
