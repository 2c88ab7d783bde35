// Package server exposes the seqcalc service as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/agbru/seqcalc/internal/config"
	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/logging"
	"github.com/agbru/seqcalc/internal/service"
	"github.com/agbru/seqcalc/pkg/models"
)

// Server is the HTTP front end of the service. It wraps http.Server with
// the route table, the middleware chain and graceful shutdown.
type Server struct {
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	router         chi.Router
	logger         logging.Logger
	shutdownSignal chan os.Signal
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
	build          *models.BuildInfo
}

// NewServer creates a Server for svc listening on cfg.Port.
//
// Parameters:
//   - svc: The service requests are dispatched to.
//   - cfg: The application configuration (port).
//   - opts: Optional functional options (WithLogger, WithTimeouts, ...).
//
// Returns:
//   - *Server: A pointer to the initialized Server.
func NewServer(svc service.Service, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		service:        svc,
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server", cfg.LogLevel),
		shutdownSignal: make(chan os.Signal, 1),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.router,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}
	return s
}

// routes builds the router. Middleware order, outermost first: security
// headers and CORS, rate limit, logging, metrics.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(
		SecurityMiddleware(s.securityConfig),
		CORSMiddleware(s.securityConfig),
		RateLimitMiddleware(s.rateLimiter),
		s.loggingMiddleware,
		s.metricsMiddleware,
	)

	r.Get("/sequence", s.handleSequence)
	r.Get("/verify", s.handleVerify)
	r.Get("/pascal", s.handlePascal)
	r.Get("/binomial", s.handleBinomial)
	r.Get("/josephus", s.handleJosephus)
	r.Get("/hanoi", s.handleHanoi)
	r.Get("/families", s.handleFamilies)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.metrics.WritePrometheus)

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeErrorResponse(w, http.StatusNotFound, "No route for "+r.URL.Path)
	})
	return r
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on the configured port until SIGINT or SIGTERM, then shuts
// down gracefully within Timeouts.ShutdownTimeout.
//
// Returns:
//   - error: A ServerError if the server fails to start or to shut down.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return apperrors.NewServerError("server failed to start", err)
	}
	return s.Serve(ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.shutdownSignal)
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server",
			logging.String("addr", ln.Addr().String()),
			logging.Uint64("max_index", s.service.Limits().MaxIndex),
		)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case sig := <-s.shutdownSignal:
		s.logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	case err := <-errCh:
		return apperrors.NewServerError("server failed", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}
	s.logger.Info("server stopped gracefully")
	return nil
}

// Stop asks a running Start or Serve to shut down.
func (s *Server) Stop() {
	select {
	case s.shutdownSignal <- syscall.SIGTERM:
	default:
	}
}
