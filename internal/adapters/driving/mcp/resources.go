package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for orderform resources.
	uriScheme = "orderform://"
)

// fieldInfo is the JSON form of a field definition.
type fieldInfo struct {
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	Aliases      []string `json:"aliases,omitempty"`
	Type         string   `json:"type"`
	Step         string   `json:"step"`
	Required     bool     `json:"required"`
	RequiredWhen string   `json:"required_when,omitempty"`
	Options      []string `json:"options,omitempty"`
	Default      string   `json:"default,omitempty"`
	Help         string   `json:"help,omitempty"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "schema",
		Name:        "schema",
		Description: "Every order-form field, in wizard order",
		MIMEType:    "application/json",
	}, s.handleSchemaResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "fields/{name}",
		Name:        "field",
		Description: "One order-form field definition",
		MIMEType:    "application/json",
	}, s.handleFieldResource)
}

// handleSchemaResource returns every field definition.
func (s *Server) handleSchemaResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	defs := s.ports.Schema.Fields()
	infos := make([]fieldInfo, len(defs))
	for i, def := range defs {
		infos[i] = newFieldInfo(def)
	}
	return jsonResource(req.Params.URI, infos)
}

// handleFieldResource returns a single field definition.
func (s *Server) handleFieldResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractFieldName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	def, err := s.ports.Schema.Get(name)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, newFieldInfo(def))
}

func newFieldInfo(def domain.FieldDefinition) fieldInfo {
	info := fieldInfo{
		Name:     def.Name,
		Label:    def.Label,
		Aliases:  def.Aliases,
		Type:     string(def.Type),
		Step:     def.Step.String(),
		Required: def.Required,
		Options:  def.Options,
		Help:     def.Help,
	}
	if c := def.RequiredWhen; c != nil {
		if len(c.In) > 0 {
			info.RequiredWhen = fmt.Sprintf("%s in [%s]", c.Field, strings.Join(c.In, ", "))
		} else {
			info.RequiredWhen = fmt.Sprintf("%s not in [%s]", c.Field, strings.Join(c.NotIn, ", "))
		}
	}
	if def.Default != nil {
		info.Default = def.Default.String()
	}
	return info
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractFieldName extracts the field name from a URI like orderform://fields/{name}.
func extractFieldName(uri string) string {
	const prefix = uriScheme + "fields/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
