package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

// DocumentRenderer writes a completed order form in a concrete format.
// The layout is owned entirely by the renderer; the core only hands over
// the validated snapshot.
type DocumentRenderer interface {
	// Format returns the output format this renderer produces.
	Format() domain.OutputFormat

	// Render writes the form to w.
	Render(ctx context.Context, form domain.OrderForm, w io.Writer) error
}
