package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/services"
)

// ExtractInput is the input schema for the extract_order_fields tool.
type ExtractInput struct {
	Text string `json:"text" jsonschema:"deal summary text with one 'Label - Value' pair per line"`
}

// ExtractOutput is the output schema for the extract_order_fields tool.
type ExtractOutput struct {
	Fields  []FieldOutput   `json:"fields"`
	Skipped []SkippedOutput `json:"skipped,omitempty"`
	Count   int             `json:"count"`
}

// FieldOutput is one recognised field.
type FieldOutput struct {
	Field      string `json:"field"`
	Value      string `json:"value"`
	Raw        string `json:"raw"`
	Label      string `json:"label"`
	Line       int    `json:"line"`
	Confidence string `json:"confidence"`
}

// SkippedOutput is a labelled value that could not be used.
type SkippedOutput struct {
	Field  string `json:"field"`
	Raw    string `json:"raw"`
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// EndDateInput is the input schema for the compute_end_date tool.
type EndDateInput struct {
	StartDate  string `json:"start_date" jsonschema:"subscription start date, e.g. 2024-03-01"`
	TermMonths int    `json:"term_months,omitempty" jsonschema:"subscription term in months (default 12)"`
}

// EndDateOutput is the output schema for the compute_end_date tool.
type EndDateOutput struct {
	EndDate    string `json:"end_date"`
	TermMonths int    `json:"term_months"`
}

// TotalsInput is the input schema for the compute_totals tool.
type TotalsInput struct {
	TermMonths int      `json:"term_months,omitempty" jsonschema:"subscription term in months (default 12)"`
	Fees       []string `json:"fees" jsonschema:"annual service fee of each line, e.g. $12,000.00"`
}

// TotalsOutput is the output schema for the compute_totals tool.
type TotalsOutput struct {
	LineTotals []string `json:"line_totals"`
	GrandTotal string   `json:"grand_total"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_order_fields",
		Description: "Find order-form fields in deal summary text",
	}, s.handleExtract)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compute_end_date",
		Description: "Compute the subscription end date from a start date and term",
	}, s.handleEndDate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compute_totals",
		Description: "Compute line totals and the grand total for a services table",
	}, s.handleTotals)
}

// handleExtract handles the extract_order_fields tool invocation.
func (s *Server) handleExtract(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	result := s.ports.Extraction.Extract(input.Text)

	output := ExtractOutput{
		Fields: make([]FieldOutput, len(result.Entries)),
		Count:  result.Len(),
	}
	for i, e := range result.Entries {
		output.Fields[i] = FieldOutput{
			Field:      e.Field,
			Value:      e.Value.String(),
			Raw:        e.Raw,
			Label:      e.Label,
			Line:       e.Line,
			Confidence: string(e.Confidence),
		}
	}
	for _, sk := range result.Skipped {
		output.Skipped = append(output.Skipped, SkippedOutput(sk))
	}

	return nil, output, nil
}

// handleEndDate handles the compute_end_date tool invocation.
func (s *Server) handleEndDate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input EndDateInput,
) (*mcp.CallToolResult, EndDateOutput, error) {
	start, err := domain.ParseDate(input.StartDate)
	if err != nil {
		return nil, EndDateOutput{}, err
	}
	term, err := termMonths(input.TermMonths)
	if err != nil {
		return nil, EndDateOutput{}, err
	}

	return nil, EndDateOutput{
		EndDate:    services.EndDate(start, term).Format(domain.DateLayout),
		TermMonths: term,
	}, nil
}

// handleTotals handles the compute_totals tool invocation.
func (s *Server) handleTotals(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input TotalsInput,
) (*mcp.CallToolResult, TotalsOutput, error) {
	term, err := termMonths(input.TermMonths)
	if err != nil {
		return nil, TotalsOutput{}, err
	}

	items := make([]domain.ServiceLineItem, len(input.Fees))
	for i, raw := range input.Fees {
		fee, err := domain.ParseMoney(raw)
		if err != nil {
			return nil, TotalsOutput{}, fmt.Errorf("fees[%d]: %w", i, err)
		}
		items[i] = domain.ServiceLineItem{AnnualServiceFee: fee}
	}

	output := TotalsOutput{
		LineTotals: make([]string, len(items)),
		GrandTotal: domain.FormatMoney(services.GrandTotal(items, term)),
	}
	for i, item := range items {
		output.LineTotals[i] = domain.FormatMoney(services.LineTotal(item, term))
	}
	return nil, output, nil
}

// termMonths applies the default term and rejects values outside
// 1..MaxTermMonths.
func termMonths(months int) (int, error) {
	switch {
	case months < 0:
		return 0, fmt.Errorf("%w: term_months must be positive", domain.ErrInvalidInput)
	case months > domain.MaxTermMonths:
		return 0, fmt.Errorf("%w: term_months must be at most %d", domain.ErrInvalidInput, domain.MaxTermMonths)
	case months == 0:
		return domain.DefaultTermMonths, nil
	default:
		return months, nil
	}
}
