package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

// maxRecentForms caps list_recent_forms regardless of the requested limit.
const maxRecentForms = 50

// RecentInput is the input schema for the list_recent_forms tool.
type RecentInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"number of forms to return, newest first (default 10)"`
}

// RecentOutput is the output schema for the list_recent_forms tool.
type RecentOutput struct {
	Forms []FormSummary `json:"forms"`
}

// FormSummary describes one generated order form.
type FormSummary struct {
	ID        string `json:"id"`
	Customer  string `json:"customer"`
	Services  int    `json:"services"`
	Total     string `json:"total"`
	EndDate   string `json:"end_date,omitempty"`
	Format    string `json:"format"`
	Path      string `json:"path"`
	CreatedAt string `json:"created_at"`
}

func (s *Server) registerHistoryTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_recent_forms",
		Description: "List recently generated order forms, newest first",
	}, s.handleRecent)
}

func (s *Server) handleRecent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RecentInput,
) (*mcp.CallToolResult, RecentOutput, error) {
	limit := input.Limit
	switch {
	case limit <= 0:
		limit = 10
	case limit > maxRecentForms:
		limit = maxRecentForms
	}

	records, err := s.ports.History.List(ctx, limit)
	if err != nil {
		return nil, RecentOutput{}, err
	}

	out := RecentOutput{Forms: make([]FormSummary, len(records))}
	for i, r := range records {
		out.Forms[i] = summarise(r)
	}
	return nil, out, nil
}

func summarise(r domain.FormRecord) FormSummary {
	sum := FormSummary{
		ID:        r.ID,
		Customer:  r.Customer,
		Services:  r.Services,
		Total:     domain.FormatMoney(r.Total),
		Format:    string(r.Format),
		Path:      r.Path,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
	if r.EndDate != nil {
		sum.EndDate = r.EndDate.Format(domain.DateLayout)
	}
	return sum
}
