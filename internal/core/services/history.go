package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driving"
	"github.com/custodia-labs/orderform-cli/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService keeps a log of generated order forms.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Record adds a generated form to the history.
func (s *HistoryService) Record(
	ctx context.Context,
	form *domain.OrderForm,
	format domain.OutputFormat,
	path string,
) (*domain.FormRecord, error) {
	if form == nil || path == "" {
		return nil, domain.ErrInvalidInput
	}
	record := domain.NewFormRecord(form, format, path)
	record.ID = uuid.New().String()
	if err := s.store.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("save history: %w", err)
	}
	logger.Debug("history: recorded %s for %q", record.ID, record.Customer)
	return &record, nil
}

// List returns the most recent records, newest first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.FormRecord, error) {
	return s.store.List(ctx, limit)
}

// Get returns a record by full ID or by a prefix that matches exactly one record.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.FormRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	record, err := s.store.Get(ctx, id)
	if err == nil {
		return record, nil
	}

	all, listErr := s.store.List(ctx, 0)
	if listErr != nil {
		return nil, listErr
	}
	var match *domain.FormRecord
	for i := range all {
		if !strings.HasPrefix(all[i].ID, id) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrAmbiguousID, id)
		}
		match = &all[i]
	}
	if match == nil {
		return nil, fmt.Errorf("history record %q: %w", id, domain.ErrNotFound)
	}
	return match, nil
}

// Remove deletes a record by full ID or unique prefix.
func (s *HistoryService) Remove(ctx context.Context, id string) error {
	record, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, record.ID)
}
