package mcp

import (
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/services"
	"github.com/custodia-labs/orderform-cli/internal/normalisers"
	"github.com/custodia-labs/orderform-cli/internal/postprocessors"
)

func newTestPorts() *Ports {
	schema := domain.DefaultSchema()
	registry := normalisers.NewRegistry()
	normalisers.RegisterDefaults(registry)
	processors := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(processors)
	pipeline := postprocessors.BuildPipeline(processors, domain.DefaultPipelineConfig())

	return &Ports{
		Extraction: services.NewExtractionService(services.NewFieldExtractor(schema), registry, pipeline),
		Schema:     schema,
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(newTestPorts())
	require.NoError(t, err)
	return server
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}
