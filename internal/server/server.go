package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phantomsec/phantomscan/internal/analysis"
	"github.com/phantomsec/phantomscan/internal/archive"
	"github.com/phantomsec/phantomscan/internal/breach"
	"github.com/phantomsec/phantomscan/internal/config"
)

// Server is the audit HTTP server. It wires the analyzer, the breach
// checker, and the optional archive behind a JSON API.
type Server struct {
	// addr is the listen address in "host:port" format.
	addr string

	// analyzer runs the detection and masking pipeline.
	analyzer *analysis.Analyzer

	// checker performs k-anonymity breach lookups.
	checker *breach.Checker

	// store persists audit summaries. May be nil, in which case runs are
	// not archived and /api/history reports an empty archive.
	store *archive.Archive

	// maxRequestBody bounds accepted request bodies in bytes.
	maxRequestBody int64

	// logger receives request-level events. Counts and classifications
	// only; the secure handler is a second line of defense.
	logger *slog.Logger

	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithListenAddr sets the listen address.
func WithListenAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithAnalyzer sets the document analyzer.
func WithAnalyzer(a *analysis.Analyzer) Option {
	return func(s *Server) {
		s.analyzer = a
	}
}

// WithBreachChecker sets the breach checker.
func WithBreachChecker(c *breach.Checker) Option {
	return func(s *Server) {
		s.checker = c
	}
}

// WithArchive sets the audit archive. Without it, runs are not persisted.
func WithArchive(a *archive.Archive) Option {
	return func(s *Server) {
		s.store = a
	}
}

// WithMaxRequestBody sets the request body size limit in bytes.
func WithMaxRequestBody(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxRequestBody = n
		}
	}
}

// WithLogger sets the logger used for request events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a Server with the given options. An analyzer and a breach
// checker are created with defaults when not provided.
func New(opts ...Option) (*Server, error) {
	s := &Server{
		addr:           config.DefaultListenAddr,
		maxRequestBody: config.DefaultMaxRequestBody,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.analyzer == nil {
		analyzer, err := analysis.New()
		if err != nil {
			return nil, fmt.Errorf("failed to build analyzer: %w", err)
		}
		s.analyzer = analyzer
	}
	if s.checker == nil {
		s.checker = breach.NewChecker(breach.WithLogger(s.logger))
	}

	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// routes builds the request multiplexer.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/check-breach", s.handleCheckBreach)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	return mux
}

// Handler returns the server's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the server and blocks until the context is canceled or the
// listener fails. On cancellation it shuts down gracefully, waiting up to
// 10 seconds for in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("audit server listening", "addr", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
