package mcp

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("missing extraction service returns error", func(t *testing.T) {
		ports := newTestPorts()
		ports.Extraction = nil
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingExtractionService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(newTestPorts())
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("empty ports returns error", func(t *testing.T) {
		ports := &Ports{}
		assert.ErrorIs(t, ports.Validate(), ErrMissingExtractionService)
	})

	t.Run("missing schema returns error", func(t *testing.T) {
		ports := newTestPorts()
		ports.Schema = nil
		assert.ErrorIs(t, ports.Validate(), ErrMissingSchema)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		assert.NoError(t, newTestPorts().Validate())
	})
}

func TestNewServer_HistoryIsOptional(t *testing.T) {
	ports := newTestPorts()
	require.Nil(t, ports.History)

	server, err := NewServer(ports)

	require.NoError(t, err)
	assert.Nil(t, server.ports.History)
}

func TestServer_Serve_StopsOnCancel(t *testing.T) {
	server := newTestServer(t).WithRateLimit(RateLimitConfig{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- server.Serve(ctx, ln) }()

	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(shutdownGrace + time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestServer_RunHTTP_BadAddress(t *testing.T) {
	err := newTestServer(t).RunHTTP(context.Background(), "not-an-address")

	assert.Error(t, err)
}
