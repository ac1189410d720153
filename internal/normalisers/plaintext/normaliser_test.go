package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
)

func normalise(t *testing.T, raw *domain.RawDocument) domain.Document {
	t.Helper()
	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	return result.Document
}

func TestNormaliser_Registration(t *testing.T) {
	var n driven.Normaliser = New()

	assert.Equal(t, 5, n.Priority())
	assert.ElementsMatch(t, []string{"text/plain", "text/markdown", "text/csv"}, n.SupportedMIMETypes())
}

func TestNormalise_DealSummary(t *testing.T) {
	doc := normalise(t, &domain.RawDocument{
		URI:      "/deals/acme_renewal-quote.txt",
		MIMEType: "text/plain",
		Content:  []byte("Customer Name - Acme Corp\nTerm - 24 months"),
	})

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "/deals/acme_renewal-quote.txt", doc.URI)
	assert.Equal(t, "acme renewal quote", doc.Title)
	assert.Equal(t, "Customer Name - Acme Corp\nTerm - 24 months", doc.Content)
	assert.Equal(t, "text/plain", doc.Metadata["mime_type"])
	assert.Equal(t, "utf-8", doc.Metadata["encoding"])
}

func TestNormalise_Encodings(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		want     string
		encoding string
	}{
		{
			name:     "utf-8 bom and mixed line endings",
			content:  []byte("\xEF\xBB\xBFCustomer Name - Acme\r\nPO Number - 7\rTerm - 12"),
			want:     "Customer Name - Acme\nPO Number - 7\nTerm - 12",
			encoding: "utf-8",
		},
		{
			name:     "utf-16 little endian",
			content:  []byte{0xFF, 0xFE, 'T', 0, 'e', 0, 'r', 0, 'm', 0, '\r', 0, '\n', 0, '1', 0, '2', 0},
			want:     "Term\n12",
			encoding: "utf-16",
		},
		{
			name:     "utf-16 big endian",
			content:  []byte{0xFE, 0xFF, 0, 'P', 0, 'O', 0, '\n', 0, '7'},
			want:     "PO\n7",
			encoding: "utf-16",
		},
		{
			name:     "windows-1252 fallback",
			content:  []byte("Caf\xe9 Ltd \x96 \x80100"),
			want:     "Café Ltd – €100",
			encoding: "windows-1252",
		},
		{
			name:     "empty",
			content:  nil,
			want:     "",
			encoding: "utf-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := normalise(t, &domain.RawDocument{URI: "deal.txt", MIMEType: "text/plain", Content: tt.content})

			assert.Equal(t, tt.want, doc.Content)
			assert.Equal(t, tt.encoding, doc.Metadata["encoding"])
		})
	}
}

func TestNormalise_NilDocument(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_MetadataTitleAndCopy(t *testing.T) {
	meta := map[string]any{"title": "Acme Quote", "uploaded_by": "cli"}

	doc := normalise(t, &domain.RawDocument{URI: "upload-1.txt", MIMEType: "text/markdown", Metadata: meta})

	assert.Equal(t, "Acme Quote", doc.Title)
	assert.Equal(t, "cli", doc.Metadata["uploaded_by"])
	assert.NotContains(t, meta, "mime_type")
}
