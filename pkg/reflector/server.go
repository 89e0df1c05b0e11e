package reflector

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/reflector-dev/reflector-go/pkg/profiler"
)

// DefaultAddr is the inspector API bind address. The inspector is a local
// development tool; it binds to loopback unless configured otherwise.
const DefaultAddr = "127.0.0.1:7700"

// DefaultStreamInterval is the /api/live websocket push cadence.
const DefaultStreamInterval = 500 * time.Millisecond

// Config contains dependencies for creating a reflector server.
type Config struct {
	// Addr is the listen address (defaults to DefaultAddr).
	Addr string

	// Perf supplies frame-level metrics (required).
	Perf PerfProvider

	// Scene supplies the scene graph (required).
	Scene SceneProvider

	// Entities resolves entity detail lookups (required).
	Entities EntityProvider

	// Profiler configures the embedded frame profiler.
	Profiler profiler.Config

	// StreamInterval is the websocket push cadence (defaults to
	// DefaultStreamInterval).
	StreamInterval time.Duration

	// Logger is the logger instance (optional, defaults to zerolog.Nop()).
	Logger zerolog.Logger
}

// Server embeds a frame profiler and serves the inspector JSON API.
type Server struct {
	cfg        Config
	logger     zerolog.Logger
	instanceID string

	profiler *profiler.Profiler

	listener   net.Listener
	httpServer *http.Server
	addr       string
}

// New creates a reflector server. The profiler is usable immediately; the
// HTTP API only serves after Start.
func New(cfg Config) (*Server, error) {
	if cfg.Perf == nil {
		return nil, fmt.Errorf("perf provider is required")
	}
	if cfg.Scene == nil {
		return nil, fmt.Errorf("scene provider is required")
	}
	if cfg.Entities == nil {
		return nil, fmt.Errorf("entity provider is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.StreamInterval <= 0 {
		cfg.StreamInterval = DefaultStreamInterval
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}
	logger = logger.With().Str("component", "reflector").Logger()

	profilerCfg := cfg.Profiler
	profilerCfg.Logger = logger

	s := &Server{
		cfg:        cfg,
		logger:     logger,
		instanceID: uuid.NewString(),
		profiler:   profiler.New(profilerCfg),
	}

	logger.Info().
		Str("instance_id", s.instanceID).
		Str("addr", cfg.Addr).
		Msg("Reflector server created")

	return s, nil
}

// Profiler returns the embedded frame profiler for instrumentation.
func (s *Server) Profiler() *profiler.Profiler {
	return s.profiler
}

// Start binds the listener and begins serving the inspector API in a
// background goroutine.
func (s *Server) Start() error {
	if s.listener != nil {
		return nil
	}

	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.listener = listener
	s.addr = listener.Addr().String()

	s.httpServer = &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("Inspector API listening")
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("Inspector API server error")
		}
	}()

	return nil
}

// Stop shuts the HTTP server down, waiting briefly for in-flight requests.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info().Msg("Stopping reflector server")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	s.httpServer = nil
	s.listener = nil
	return err
}

// Addr returns the bound listen address, empty before Start.
func (s *Server) Addr() string {
	return s.addr
}
