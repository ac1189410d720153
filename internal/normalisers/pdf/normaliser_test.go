package pdf

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
)

func fakePages(pages ...string) PageReader {
	return func([]byte) ([]string, error) { return pages, nil }
}

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.NotNil(t, normaliser.read)
}

func TestSupportedMIMETypes(t *testing.T) {
	assert.Equal(t, []string{"application/pdf"}, New().SupportedMIMETypes())
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 50, New().Priority())
}

func TestNormalise_NilDocument(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_NotAPDF(t *testing.T) {
	raw := &domain.RawDocument{URI: "a.pdf", MIMEType: "application/pdf", Content: []byte("plain words")}

	_, err := New().Normalise(context.Background(), raw)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_JoinsPages(t *testing.T) {
	normaliser := NewWithReader(fakePages("Order Form\nCustomer Name: Acme", "Term: 24"))
	raw := &domain.RawDocument{
		URI:      "/uploads/acme.pdf",
		MIMEType: "application/pdf",
		Content:  []byte("%PDF-1.4"),
		Metadata: map[string]any{"uploaded_by": "cli"},
	}

	result, err := normaliser.Normalise(context.Background(), raw)
	require.NoError(t, err)

	doc := result.Document
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "Order Form", doc.Title)
	assert.Equal(t, "Order Form\nCustomer Name: Acme\nTerm: 24", doc.Content)
	assert.Equal(t, "pdf", doc.Metadata["format"])
	assert.Equal(t, 2, doc.Metadata["pages"])
	assert.Equal(t, "cli", doc.Metadata["uploaded_by"])
}

func TestNormalise_ReaderError(t *testing.T) {
	normaliser := NewWithReader(func([]byte) ([]string, error) {
		return nil, errors.New("xref table missing")
	})
	raw := &domain.RawDocument{URI: "a.pdf", MIMEType: "application/pdf"}

	result, err := normaliser.Normalise(context.Background(), raw)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "xref table missing")
	assert.Nil(t, result)
}

func TestJoinRow(t *testing.T) {
	tests := []struct {
		name  string
		texts pdf.TextHorizontal
		want  string
	}{
		{
			name: "adjacent glyphs",
			texts: pdf.TextHorizontal{
				{X: 10, W: 5, FontSize: 10, S: "T"},
				{X: 15, W: 5, FontSize: 10, S: "e"},
				{X: 20, W: 5, FontSize: 10, S: "rm"},
			},
			want: "Term",
		},
		{
			name: "gap becomes space",
			texts: pdf.TextHorizontal{
				{X: 10, W: 40, FontSize: 10, S: "Term:"},
				{X: 60, W: 10, FontSize: 10, S: "24"},
			},
			want: "Term: 24",
		},
		{
			name: "existing space kept single",
			texts: pdf.TextHorizontal{
				{X: 10, W: 40, FontSize: 10, S: "Term: "},
				{X: 60, W: 10, FontSize: 10, S: "24"},
			},
			want: "Term: 24",
		},
		{
			name:  "empty row",
			texts: nil,
			want:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, joinRow(tc.texts))
		})
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		uri      string
		expected string
	}{
		{"first line as title", "Order Form\n\nCustomer Name: Acme", "/doc.pdf", "Order Form"},
		{"skip empty lines", "\n\n\nAcme Quote\nContent", "/doc.pdf", "Acme Quote"},
		{"fallback to filename", "", "/path/to/acme_order-form.pdf", "acme order form"},
		{"skip very long first line", strings.Repeat("x", 250) + "\nShort Title", "/doc.pdf", "Short Title"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, extractTitle(tc.content, tc.uri))
		})
	}
}

func TestCopyMetadata(t *testing.T) {
	assert.Nil(t, copyMetadata(nil))

	src := map[string]any{"key1": "value1", "key2": 42}
	dst := copyMetadata(src)
	assert.Equal(t, src, dst)
	dst["key3"] = true
	assert.NotContains(t, src, "key3")
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}
