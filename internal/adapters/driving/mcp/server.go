package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/orderform-cli/internal/logger"
)

// Version is reported to clients during initialisation.
const Version = "0.2.0"

// shutdownGrace bounds how long in-flight HTTP requests may finish after
// the context is cancelled.
const shutdownGrace = 5 * time.Second

var log = logger.Component("mcp")

// Server exposes order-form extraction and calculations over MCP.
type Server struct {
	ports  *Ports
	server *mcp.Server
	limits RateLimitConfig
}

// NewServer validates ports and registers every tool and resource. The
// history tool is only offered when a history port is set.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(&mcp.Implementation{Name: "orderform", Version: Version}, nil),
		limits: DefaultRateLimit,
	}
	s.registerTools()
	s.registerResources()
	if ports.History != nil {
		s.registerHistoryTools()
	}
	return s, nil
}

// WithRateLimit sets the request limit shared by all HTTP clients.
func (s *Server) WithRateLimit(cfg RateLimitConfig) *Server {
	s.limits = cfg
	return s
}

// Run serves a single client over stdin/stdout until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	log.Debug("serving over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is done.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts HTTP connections on ln. It returns nil once ctx is
// cancelled and in-flight requests have drained.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.httpHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown: %v", err)
		}
	}()

	log.Info("serving http on %s (%.1f req/s, burst %d)", ln.Addr(), s.limits.RequestsPerSecond, s.limits.BurstSize)
	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	return err
}

func (s *Server) httpHandler() http.Handler {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
	return rateLimited(handler, s.limits)
}
