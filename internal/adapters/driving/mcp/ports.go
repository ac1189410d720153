package mcp

import (
	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driving"
)

// Ports holds the services the MCP tools call into.
type Ports struct {
	// Extraction recovers fields from deal text.
	Extraction driving.ExtractionService

	// Schema describes the order-form fields.
	Schema *domain.FieldSchema

	// History is optional. When set, recent generated forms can be listed.
	History driving.HistoryService
}

// Validate reports the first missing required port.
func (p *Ports) Validate() error {
	if p.Extraction == nil {
		return ErrMissingExtractionService
	}
	if p.Schema == nil {
		return ErrMissingSchema
	}
	return nil
}
