// Package server provides the HTTP REST API for the blog agent.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bertram-labs/blog-agent/internal/config"
	"github.com/bertram-labs/blog-agent/internal/pipeline"
	"github.com/bertram-labs/blog-agent/internal/server/middleware"
	"github.com/bertram-labs/blog-agent/internal/server/ratelimit"
	"github.com/bertram-labs/blog-agent/internal/store"
)

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	orchestrator *pipeline.Orchestrator
	store        *store.Store
	enricher     TopicEnricher
	rateLimiter  *ratelimit.Limiter

	// jwtService and authHandler are nil when JWT_SECRET is unset; the
	// API then runs without bearer auth.
	jwtService  *JWTService
	authHandler *AuthHandler
}

// Config holds server configuration
type Config struct {
	Port         int
	Orchestrator *pipeline.Orchestrator
	// Store is optional; history and topic persistence endpoints return
	// 503 when it is nil.
	Store *store.Store
	// Enricher is optional; topic ideas are returned unenriched when it
	// is nil.
	Enricher TopicEnricher
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Orchestrator == nil {
		return nil, fmt.Errorf("orchestrator is required")
	}

	s := &Server{
		orchestrator: cfg.Orchestrator,
		store:        cfg.Store,
		enricher:     cfg.Enricher,
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Authentication is opt-in. With JWT_SECRET set, every API route
	// except health and token issuance requires a bearer token; without
	// it, routes are open and the token endpoint reports 503.
	if os.Getenv("JWT_SECRET") != "" {
		passwordConfig, err := config.NewPasswordConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create password config: %w", err)
		}

		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		s.jwtService = NewJWTService(jwtConfig)
		s.authHandler = NewAuthHandler(passwordConfig, s.jwtService)
	} else {
		log.Println("JWT_SECRET not set, API authentication disabled")
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	if s.authHandler != nil {
		mux.HandleFunc("POST /api/auth/token", s.authHandler.Token)
	} else {
		mux.HandleFunc("POST /api/auth/token", s.handleAuthDisabled)
	}

	// Generation and topic routes require a valid token when auth is
	// configured.
	authed := http.NewServeMux()
	authed.HandleFunc("POST /api/generate", s.handleGenerate)
	authed.HandleFunc("POST /api/generate/stream", s.handleGenerateStream)
	authed.HandleFunc("POST /api/topics", s.handleGenerateTopics)
	authed.HandleFunc("POST /api/topics/extract", s.handleExtractTopics)
	authed.HandleFunc("GET /api/topics", s.handleListTopics)
	authed.HandleFunc("POST /api/topics/{id}/use", s.handleUseTopic)
	authed.HandleFunc("GET /api/history", s.handleHistory)

	var api http.Handler = authed
	if s.jwtService != nil {
		api = middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(authed)
	}
	mux.Handle("/api/", api)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 600 * time.Second, // Long timeout for generation runs
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.orchestrator.Close()
	if s.store != nil {
		s.store.Close()
	}
	log.Println("Server stopped")
	return nil
}

// Handler returns the fully wired handler chain for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	database := "disabled"
	if s.store != nil {
		database = "ok"
		if err := s.store.Ping(r.Context()); err != nil {
			database = "unreachable"
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": database,
	})
}

// handleAuthDisabled answers the token endpoint when no JWT secret is
// configured.
func (s *Server) handleAuthDisabled(w http.ResponseWriter, _ *http.Request) {
	s.errorResponse(w, http.StatusServiceUnavailable, "authentication is not configured")
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
