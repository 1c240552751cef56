// Package server implements the tweet API that remote-mode clients call:
//
//	POST /api/v1/tweet       {"category": "<id>"} -> {"tweet": "<text>"}
//	GET  /api/v1/categories  [{"id": "...", "name": "..."}]
//	GET  /healthz
//
// Tweets are picked by a resolver, normally resolver.Local over the same
// catalog the terminal widget uses.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"tweetgen/internal/catalog"
	"tweetgen/internal/resolver"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	TweetPath      = "/api/v1/tweet"
	CategoriesPath = "/api/v1/categories"
	HealthPath     = "/healthz"

	maxRequestBytes = 4 << 10
	shutdownTimeout = 5 * time.Second
)

// Config holds listener and middleware settings.
type Config struct {
	Addr           string
	RateLimitRPS   float64 // <= 0 disables rate limiting
	RateLimitBurst int
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// Server serves tweets from a resolver.
type Server struct {
	cfg      Config
	catalog  *catalog.Catalog
	resolver resolver.Resolver
	logger   *zap.Logger
	clock    clock.Clock
	limiter  *RateLimiter
	handler  http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the access and error logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the clock driving the rate limiter.
func WithClock(c clock.Clock) Option {
	return func(s *Server) {
		if c != nil {
			s.clock = c
		}
	}
}

// New creates a server. The catalog backs the categories listing and the
// request validation; res picks the tweets.
func New(cfg Config, cat *catalog.Catalog, res resolver.Resolver, opts ...Option) (*Server, error) {
	if cat == nil {
		return nil, fmt.Errorf("server requires a catalog")
	}
	if res == nil {
		return nil, fmt.Errorf("server requires a resolver")
	}

	s := &Server{
		cfg:      cfg,
		catalog:  cat,
		resolver: res,
		logger:   zap.NewNop(),
		clock:    clock.New(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(TweetPath, s.handleTweet)
	mux.HandleFunc(CategoriesPath, s.handleCategories)
	mux.HandleFunc(HealthPath, s.handleHealth)

	var h http.Handler = mux
	if cfg.RateLimitRPS > 0 {
		s.limiter = NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, s.clock)
		h = s.limiter.Middleware(h)
	}
	if len(cfg.AllowedOrigins) > 0 {
		h = cors(cfg.AllowedOrigins, h)
	}
	h = recoverer(s.logger, h)
	h = accessLog(s.logger, h)
	h = withRequestID(h)
	s.handler = h

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
// It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("tweet API listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.logger.Info("tweet API stopped")
		return nil
	})
	return g.Wait()
}
