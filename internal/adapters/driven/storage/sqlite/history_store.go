package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
)

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

const historyColumns = `id, session_id, customer, company, format, path, services, total, end_date, created_at`

// Save stores or replaces a record.
func (s *historyStore) Save(ctx context.Context, record domain.FormRecord) error {
	if record.ID == "" {
		return domain.ErrInvalidInput
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	var endDate sql.NullTime
	if record.EndDate != nil {
		endDate = sql.NullTime{Time: record.EndDate.UTC(), Valid: true}
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO form_history (`+historyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			session_id = excluded.session_id,
			customer = excluded.customer,
			company = excluded.company,
			format = excluded.format,
			path = excluded.path,
			services = excluded.services,
			total = excluded.total,
			end_date = excluded.end_date,
			created_at = excluded.created_at
	`, record.ID, record.SessionID, record.Customer, record.CompanyName,
		string(record.Format), record.Path, record.Services, record.Total.String(),
		endDate, record.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving history record: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *historyStore) Get(ctx context.Context, id string) (*domain.FormRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+historyColumns+` FROM form_history WHERE id = ?
	`, id)
	return scanRecord(row)
}

// List returns records newest first.
func (s *historyStore) List(ctx context.Context, limit int) ([]domain.FormRecord, error) {
	query := `SELECT ` + historyColumns + ` FROM form_history ORDER BY created_at DESC, id ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	records := []domain.FormRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return records, nil
}

// Delete removes a record. Deleting a missing record is not an error.
func (s *historyStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, `DELETE FROM form_history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting history record: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.FormRecord, error) {
	var record domain.FormRecord
	var format, total string
	var endDate sql.NullTime
	var createdAt time.Time

	err := row.Scan(&record.ID, &record.SessionID, &record.Customer, &record.CompanyName,
		&format, &record.Path, &record.Services, &total, &endDate, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning history record: %w", err)
	}

	amount, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parsing total %q: %w", total, err)
	}

	record.Format = domain.OutputFormat(format)
	record.Total = amount
	record.CreatedAt = createdAt
	if endDate.Valid {
		end := endDate.Time
		record.EndDate = &end
	}
	return &record, nil
}
