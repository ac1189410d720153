package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
)

type stubNormaliser struct {
	name     string
	mimes    []string
	priority int
}

func (s *stubNormaliser) SupportedMIMETypes() []string { return s.mimes }
func (s *stubNormaliser) Priority() int                { return s.priority }
func (s *stubNormaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	return &driven.NormaliseResult{Document: domain.Document{Title: s.name, Content: string(raw.Content)}}, nil
}

func TestRegistry_PicksHighestPriority(t *testing.T) {
	r := NewRegistry(
		&stubNormaliser{name: "fallback", mimes: []string{"text/plain"}, priority: 5},
		&stubNormaliser{name: "specific", mimes: []string{"text/plain"}, priority: 50},
	)

	result, err := r.Normalise(context.Background(), &domain.RawDocument{MIMEType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, "specific", result.Document.Title)
}

func TestRegistry_TieGoesToFirstRegistered(t *testing.T) {
	r := NewRegistry(
		&stubNormaliser{name: "first", mimes: []string{"text/plain"}, priority: 5},
		&stubNormaliser{name: "second", mimes: []string{"text/plain"}, priority: 5},
	)

	result, err := r.Normalise(context.Background(), &domain.RawDocument{MIMEType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, "first", result.Document.Title)
}

func TestRegistry_UnsupportedType(t *testing.T) {
	r := NewRegistry()

	_, err := r.Normalise(context.Background(), &domain.RawDocument{MIMEType: "image/png"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	_, err = r.Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	types := r.SupportedMIMETypes()
	assert.Contains(t, types, "text/plain")
	assert.Contains(t, types, "application/pdf")
	assert.Contains(t, types, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	assert.IsIncreasing(t, types)

	result, err := r.Normalise(context.Background(), &domain.RawDocument{
		URI:      "order.txt",
		MIMEType: "text/plain",
		Content:  []byte("Customer Name: Acme"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Customer Name: Acme", result.Document.Content)
}
