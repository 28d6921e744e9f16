package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nahidhasan98/script-drift/internal/config"
	"github.com/nahidhasan98/script-drift/internal/handlers"
	"github.com/nahidhasan98/script-drift/internal/logger"
	"github.com/nahidhasan98/script-drift/internal/middleware"
)

// Paths reachable without an API key. Webhooks authenticate by signature.
var publicPaths = []string{"/health", "/webhook/github", "/webhook/gitea"}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	handler    *handlers.Handler
	middleware *middleware.Middleware
	log        *logger.Logger
}

// New creates a new HTTP server
func New(cfg *config.Config, handler *handlers.Handler, log *logger.Logger) *Server {
	limiter := middleware.NewRateLimiter(cfg.Security.RateLimit, cfg.Security.RateLimitBurst)
	mw := middleware.New(log, limiter, publicPaths...)
	mw.SetAPIKeys(cfg.Security.APIKeys)
	mw.SetTrustProxy(cfg.Security.TrustProxy)

	return &Server{
		handler:    handler,
		middleware: mw,
		log:        log,
	}
}

// Routes returns the full handler chain
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handler.HealthCheck)
	mux.HandleFunc("GET /scripts", s.handler.ListScripts)
	mux.HandleFunc("POST /compare", s.handler.Compare)
	mux.HandleFunc("POST /webhook/github", s.handler.GitHubWebhook)
	mux.HandleFunc("POST /webhook/gitea", s.handler.GiteaWebhook)

	handler := s.middleware.Recovery(mux)
	handler = s.middleware.Logging(handler)
	handler = s.middleware.Security(handler)
	handler = s.middleware.CORS(handler)
	handler = s.middleware.RateLimit(handler)
	handler = s.middleware.APIKeyAuth(handler)

	return handler
}

// Start starts the HTTP server in the background. Serve errors are sent on errc.
func (s *Server) Start(cfg *config.Config, errc chan<- error) {
	s.httpServer = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      s.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	s.log.Infof("HTTP server listening on %s", cfg.Server.Address())

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.log.Info("HTTP server shutdown complete")
	return nil
}
