package normalisers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/talentia-labs/talentia/internal/core/domain"
	"github.com/talentia-labs/talentia/internal/core/ports/driven"
)

// MinContentLength is the minimum number of characters, after trimming,
// for an extraction to count as successful.
const MinContentLength = 50

// Decoder extracts text from one document format.
type Decoder interface {
	// Extensions returns the lower-case extensions this decoder handles,
	// without the leading dot.
	Extensions() []string

	// Decode returns the text content of the document. An empty string with
	// a nil error means the format parsed but contained no selectable text.
	Decode(ctx context.Context, content []byte) (string, error)
}

// Recoverer is an optional Decoder capability: a degraded-input recovery
// path tried when Decode yields no text. Recover is fail-soft: it returns
// an empty string on any internal failure and never errors.
type Recoverer interface {
	Recover(ctx context.Context, content []byte) string
}

// Ensure Registry implements the port.
var _ driven.Extractor = (*Registry)(nil)

// Registry dispatches extraction by file extension.
type Registry struct {
	decoders map[string]Decoder
	logger   *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		decoders: make(map[string]Decoder),
		logger:   logger,
	}
}

// Register adds a decoder for each of its extensions.
func (r *Registry) Register(d Decoder) {
	for _, ext := range d.Extensions() {
		r.decoders[ext] = d
	}
}

// Extract returns the normalised text content of the document.
func (r *Registry) Extract(ctx context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil || len(raw.Content) == 0 {
		return "", domain.ErrInvalidInput
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(raw.Filename)), ".")
	decoder, ok := r.decoders[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, ext)
	}

	text, err := decoder.Decode(ctx, raw.Content)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrExtractionFailed, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		// No selectable text. Try the decoder's recovery path, if any.
		if rec, ok := decoder.(Recoverer); ok {
			r.logger.Info("no selectable text, attempting recovery",
				zap.String("filename", raw.Filename))
			text = strings.TrimSpace(rec.Recover(ctx, raw.Content))
		}
	}

	if len(text) < MinContentLength {
		return "", fmt.Errorf("%w: %d chars extracted", domain.ErrEmptyDocument, len(text))
	}

	return text, nil
}
