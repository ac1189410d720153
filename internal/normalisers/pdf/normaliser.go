// Package pdf normalises PDF uploads to text with github.com/ledongthuc/pdf.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
	"github.com/custodia-labs/orderform-cli/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

var pdfLog = logger.Component("pdf")

// maxTitleLength bounds the first line used as a title.
const maxTitleLength = 200

// PageReader returns the text of every page in a PDF, in page order.
type PageReader func(content []byte) ([]string, error)

// Normaliser handles PDF documents.
type Normaliser struct {
	read PageReader
}

// New creates a PDF normaliser backed by ledongthuc/pdf.
func New() *Normaliser {
	return &Normaliser{read: readPages}
}

// NewWithReader creates a PDF normaliser with a custom page reader.
func NewWithReader(read PageReader) *Normaliser {
	return &Normaliser{read: read}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise converts a PDF to text. Pages are joined with a newline.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	pages, err := n.read(raw.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: pdf: %v", domain.ErrInvalidInput, err)
	}
	content := strings.Join(pages, "\n")

	doc := domain.Document{
		ID:       uuid.New().String(),
		URI:      raw.URI,
		Title:    extractTitle(content, raw.URI),
		Content:  content,
		Metadata: copyMetadata(raw.Metadata),
	}
	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	doc.Metadata["mime_type"] = raw.MIMEType
	doc.Metadata["format"] = "pdf"
	doc.Metadata["pages"] = len(pages)

	return &driven.NormaliseResult{
		Document: doc,
	}, nil
}

// readPages extracts text row by row so that each visual line of the
// page becomes one line of text.
func readPages(content []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			pdfLog.Warn("page %d: row extraction failed, using plain text: %v", i, err)
			text, plainErr := page.GetPlainText(nil)
			if plainErr != nil {
				return nil, fmt.Errorf("page %d: %w", i, plainErr)
			}
			pages = append(pages, text)
			continue
		}

		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			lines = append(lines, joinRow(row.Content))
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages, nil
}

// joinRow concatenates the fragments of one row. A space is inserted
// where the horizontal gap between fragments is wider than a fifth of
// the font size and neither side already carries whitespace.
func joinRow(texts pdf.TextHorizontal) string {
	var b strings.Builder
	for i, t := range texts {
		if i > 0 {
			prev := texts[i-1]
			gap := t.X - (prev.X + prev.W)
			if gap > prev.FontSize*0.2 &&
				!strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(t.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
	}
	return b.String()
}

// extractTitle returns the first short non-empty line, or the filename.
func extractTitle(content, uri string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.Trim(line, "\x00"))
		if line != "" && len(line) <= maxTitleLength {
			return line
		}
	}

	filename := filepath.Base(uri)
	if ext := filepath.Ext(filename); ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}

// copyMetadata creates a shallow copy of metadata.
func copyMetadata(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
