package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driving"
)

// Ensure ExtractionService implements the interface.
var _ driving.ExtractionService = (*ExtractionService)(nil)

// MIME types of accepted uploads.
const (
	MIMETypePlainText = "text/plain"
	MIMETypePDF       = "application/pdf"
	MIMETypeDOCX      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var mimeTypesByExtension = map[string]string{
	".txt":  MIMETypePlainText,
	".text": MIMETypePlainText,
	".pdf":  MIMETypePDF,
	".docx": MIMETypeDOCX,
}

// MIMETypeForFile maps an upload's file name to its MIME type.
func MIMETypeForFile(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	mime, ok := mimeTypesByExtension[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q (supported: .txt, .pdf, .docx)", domain.ErrUnsupportedType, filepath.Base(filename))
	}
	return mime, nil
}

// SupportedExtensions lists the accepted file extensions in sorted order.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(mimeTypesByExtension))
	for ext := range mimeTypesByExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ExtractionService turns uploads into extraction results: normalise to
// text, clean the text, run the label heuristic.
type ExtractionService struct {
	extractor *FieldExtractor
	registry  driven.NormaliserRegistry
	pipeline  driven.PostProcessorPipeline
}

// NewExtractionService creates an extraction service. The pipeline may be
// nil, in which case normalised text is used as is.
func NewExtractionService(
	extractor *FieldExtractor,
	registry driven.NormaliserRegistry,
	pipeline driven.PostProcessorPipeline,
) *ExtractionService {
	return &ExtractionService{
		extractor: extractor,
		registry:  registry,
		pipeline:  pipeline,
	}
}

// Extract runs the label heuristic over text.
func (s *ExtractionService) Extract(text string) domain.ExtractionResult {
	return s.extractor.Extract(text)
}

// ExtractFile normalises, cleans and extracts an uploaded file.
func (s *ExtractionService) ExtractFile(ctx context.Context, filename string, content []byte) (*driving.ImportResult, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("%w: no normalisers registered", domain.ErrUnsupportedType)
	}
	mime, err := MIMETypeForFile(filename)
	if err != nil {
		return nil, err
	}

	extractLog.Debug("normalising %s as %s (%d bytes)", filename, mime, len(content))
	normalised, err := s.registry.Normalise(ctx, &domain.RawDocument{
		URI:      filename,
		MIMEType: mime,
		Content:  content,
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(filename), err)
	}

	text := normalised.Document.Content
	if s.pipeline != nil {
		text, err = s.pipeline.Process(ctx, &normalised.Document)
		if err != nil {
			return nil, fmt.Errorf("clean %s: %w", filepath.Base(filename), err)
		}
	}

	return &driving.ImportResult{
		Text:       text,
		Extraction: s.extractor.Extract(text),
	}, nil
}
