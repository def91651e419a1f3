package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/indyteo/WebServerAPI/config"
	"github.com/indyteo/WebServerAPI/observability"
	"github.com/indyteo/WebServerAPI/routing"
	"github.com/indyteo/WebServerAPI/session"
)

// ErrorHandler is invoked when a route handler returns an error. It may
// use the response to render an error page; if it leaves the response
// unfinished the server falls back to a plain 500.
type ErrorHandler func(w *Response, r *http.Request, err error)

// NotFoundHandler is invoked when no route produced a finished response.
type NotFoundHandler func(w *Response, r *http.Request)

// Server binds a router to an HTTP listener and applies the default
// policies around dispatch: panic recovery, error rendering and the
// eventual not-found response.
type Server struct {
	router   *routing.Router
	logger   observability.Logger
	metrics  *observability.ServerMetrics
	sessions *session.Manager
	notFound NotFoundHandler
	errors   ErrorHandler
	cfg      config.ServerConfig

	mu         sync.Mutex
	httpServer *http.Server
	running    bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger observability.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics enables request metrics.
func WithMetrics(metrics *observability.ServerMetrics) Option {
	return func(s *Server) {
		s.metrics = metrics
	}
}

// WithSessions attaches a session manager, available to handlers via
// Sessions.
func WithSessions(manager *session.Manager) Option {
	return func(s *Server) {
		s.sessions = manager
	}
}

// WithNotFoundHandler replaces the default 404 response.
func WithNotFoundHandler(handler NotFoundHandler) Option {
	return func(s *Server) {
		s.notFound = handler
	}
}

// WithErrorHandler replaces the default error response.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(s *Server) {
		s.errors = handler
	}
}

// New creates a server around the given router.
func New(router *routing.Router, cfg config.ServerConfig, opts ...Option) *Server {
	s := &Server{
		router: router,
		logger: observability.NopLogger(),
		cfg:    cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notFound == nil {
		s.notFound = defaultNotFound
	}
	if s.errors == nil {
		s.errors = s.defaultErrorHandler
	}
	return s
}

// Router returns the server's router.
func (s *Server) Router() *routing.Router {
	return s.router
}

// Sessions returns the attached session manager, or nil.
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// ServeHTTP runs the full dispatch pipeline for one request.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := NewResponse(w)
	req := r.Clone(r.Context())

	if s.metrics != nil {
		s.metrics.RequestsInFlight.Inc()
		defer s.metrics.RequestsInFlight.Dec()
	}

	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("handler panic",
				observability.String("method", r.Method),
				observability.String("path", r.URL.Path),
				observability.Any("panic", rec),
			)
			if !resp.Finished() {
				http.Error(resp, http.StatusText(http.StatusInternalServerError),
					http.StatusInternalServerError)
			}
		}
		s.observe(req, resp, time.Since(start))
	}()

	outcome, err := s.router.Dispatch(resp, req)
	if err != nil {
		s.errors(resp, req, err)
		if !resp.Finished() {
			http.Error(resp, http.StatusText(http.StatusInternalServerError),
				http.StatusInternalServerError)
		}
		return
	}

	if outcome != routing.OutcomeStopped && !resp.Finished() {
		s.notFound(resp, req)
	}
}

func (s *Server) observe(r *http.Request, resp *Response, duration time.Duration) {
	if s.metrics == nil {
		return
	}
	route := "unmatched"
	if t := routing.TemplateFromContext(r.Context()); t != nil {
		route = t.Stripped()
	}
	s.metrics.Observe(route, r.Method, resp.Status(), duration)
}

func (s *Server) defaultErrorHandler(w *Response, r *http.Request, err error) {
	s.logger.Error("handler error",
		observability.String("method", r.Method),
		observability.String("path", r.URL.Path),
		observability.Error(err),
	)
}

func defaultNotFound(w *Response, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}

// ListenAndServe starts the HTTP listener and blocks until the server
// is shut down or the listener fails.
func (s *Server) ListenAndServe() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.httpServer = &http.Server{
		Addr:         s.cfg.Address,
		Handler:      s,
		ReadTimeout:  s.cfg.ReadTimeout.Std(),
		WriteTimeout: s.cfg.WriteTimeout.Std(),
		IdleTimeout:  s.cfg.IdleTimeout.Std(),
	}
	s.running = true
	s.mu.Unlock()

	s.logger.Info("starting HTTP server",
		observability.String("address", s.cfg.Address),
	)

	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully, waiting for in-flight requests
// up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	srv := s.httpServer
	s.mu.Unlock()

	s.logger.Info("stopping HTTP server")

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	s.logger.Info("HTTP server stopped")
	return nil
}

// Close shuts the server down gracefully within the configured
// shutdown timeout.
func (s *Server) Close() error {
	ctx := context.Background()
	if timeout := s.cfg.ShutdownTimeout.Std(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.Shutdown(ctx)
}

// IsRunning reports whether the listener is active.
func (s *Server) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
