// Package plaintext reads pasted quotes, exported email bodies and other
// text files.
package plaintext

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
	"github.com/custodia-labs/orderform-cli/internal/logger"
)

var _ driven.Normaliser = (*Normaliser)(nil)

var log = logger.Component("plaintext")

// Normaliser decodes text uploads into UTF-8 with "\n" line endings.
type Normaliser struct{}

// New returns a text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes implements driven.Normaliser.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/plain", "text/markdown", "text/csv"}
}

// Priority implements driven.Normaliser. Text is the fallback reader.
func (n *Normaliser) Priority() int {
	return 5
}

// Normalise decodes raw and unifies line endings so labels anchor at
// line starts. UTF-16 files with a byte order mark are converted, and
// bytes that are not valid UTF-8 are read as Windows-1252, which is what
// older Office exports produce.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	text, encoding, err := decode(raw.Content)
	if err != nil {
		return nil, err
	}
	text = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(text)

	meta := make(map[string]any, len(raw.Metadata)+2)
	for k, v := range raw.Metadata {
		meta[k] = v
	}
	meta["mime_type"] = raw.MIMEType
	meta["encoding"] = encoding

	return &driven.NormaliseResult{
		Document: domain.Document{
			ID:       uuid.New().String(),
			URI:      raw.URI,
			Title:    title(raw),
			Content:  text,
			Metadata: meta,
		},
	}, nil
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decode returns content as UTF-8 along with the name of the source
// encoding.
func decode(content []byte) (string, string, error) {
	switch {
	case bytes.HasPrefix(content, bomUTF8):
		return string(content[len(bomUTF8):]), "utf-8", nil
	case bytes.HasPrefix(content, bomUTF16LE), bytes.HasPrefix(content, bomUTF16BE):
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(content)
		if err != nil {
			return "", "", err
		}
		return string(out), "utf-16", nil
	case utf8.Valid(content):
		return string(content), "utf-8", nil
	}

	log.Debug("content is not valid UTF-8, decoding as windows-1252")
	out, err := charmap.Windows1252.NewDecoder().Bytes(content)
	if err != nil {
		return "", "", err
	}
	return string(out), "windows-1252", nil
}

// title prefers a title from metadata and otherwise derives one from the
// file name, e.g. "acme_renewal-quote.txt" becomes "acme renewal quote".
func title(raw *domain.RawDocument) string {
	if t, ok := raw.Metadata["title"].(string); ok && t != "" {
		return t
	}
	name := filepath.Base(raw.URI)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.NewReplacer("_", " ", "-", " ").Replace(name)
}
