package cli

import (
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/mcp"
)

var (
	mcpHost  string
	mcpPort  int
	mcpRate  float64
	mcpBurst int
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol integration",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve order-form tools to an MCP client",
	Long: `Serve order-form tools to an MCP client such as an AI assistant.

Tools:
  extract_order_fields  find order-form fields in deal text
  compute_end_date      subscription end date from start date and term
  compute_totals        line totals and grand total for a services table
  list_recent_forms     forms generated on this machine, newest first

Resources:
  orderform://schema         every field definition, in wizard order
  orderform://fields/{name}  one field definition

With no --port the server speaks JSON-RPC over stdin and stdout, which is
what desktop assistants launch. With --port it serves the streamable HTTP
transport, rate limited per --rate-limit and --burst.`,
	Example: `  orderform mcp serve
  orderform mcp serve --port 8080
  orderform mcp serve --host 0.0.0.0 --port 8080 --rate-limit 2 --burst 5`,
	RunE: runMCPServe,
}

func init() {
	f := mcpServeCmd.Flags()
	f.StringVar(&mcpHost, "host", "127.0.0.1", "HTTP bind address")
	f.IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 serves over stdio)")
	f.Float64Var(&mcpRate, "rate-limit", mcp.DefaultRateLimit.RequestsPerSecond, "HTTP requests per second (0 disables)")
	f.IntVar(&mcpBurst, "burst", mcp.DefaultRateLimit.BurstSize, "HTTP request burst size")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	server, err := mcp.NewServer(&mcp.Ports{
		Extraction: extractionService,
		Schema:     schema,
		History:    historyService,
	})
	if err != nil {
		return err
	}

	if mcpPort <= 0 {
		return server.Run(cmd.Context())
	}

	server.WithRateLimit(mcp.RateLimitConfig{RequestsPerSecond: mcpRate, BurstSize: mcpBurst})
	addr := net.JoinHostPort(mcpHost, strconv.Itoa(mcpPort))
	cmd.Printf("MCP server listening on http://%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
