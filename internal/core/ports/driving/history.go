package driving

import (
	"context"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

// HistoryService records and browses previously generated order forms.
type HistoryService interface {
	// Record adds a generated form saved at path to the history.
	Record(ctx context.Context, form *domain.OrderForm, format domain.OutputFormat, path string) (*domain.FormRecord, error)

	// List returns the most recent records, newest first.
	List(ctx context.Context, limit int) ([]domain.FormRecord, error)

	// Get returns a record by ID or unique ID prefix.
	Get(ctx context.Context, id string) (*domain.FormRecord, error)

	// Remove deletes a record by ID or unique ID prefix.
	Remove(ctx context.Context, id string) error
}
