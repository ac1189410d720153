package driven

import (
	"context"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

// NormaliserRegistry turns an upload into text by dispatching on its MIME
// type. When several normalisers accept a type, the highest priority wins.
type NormaliserRegistry interface {
	// Normalise converts raw with the best matching normaliser. It fails
	// with domain.ErrUnsupportedType when none accepts the MIME type.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)

	// Register adds a normaliser.
	Register(normaliser Normaliser)

	// SupportedMIMETypes lists every MIME type some normaliser accepts.
	SupportedMIMETypes() []string
}
