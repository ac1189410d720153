package driven

import (
	"context"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

// HistoryStore persists records of generated order forms.
type HistoryStore interface {
	// Save stores a record, replacing any record with the same ID.
	Save(ctx context.Context, record domain.FormRecord) error

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*domain.FormRecord, error)

	// List returns records newest first. A limit of zero or less returns all.
	List(ctx context.Context, limit int) ([]domain.FormRecord, error)

	// Delete removes a record by ID.
	Delete(ctx context.Context, id string) error
}
