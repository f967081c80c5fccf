package driven

import (
	"context"

	"github.com/talentia-labs/talentia/internal/core/domain"
)

// Extractor turns raw document bytes into plain text.
//
// Errors: domain.ErrUnsupportedFormat when the extension is outside the
// supported set, domain.ErrExtractionFailed when the format-specific decoder
// fails, domain.ErrEmptyDocument when the trimmed text falls below the
// minimum-content threshold.
type Extractor interface {
	// Extract returns the normalised text content of the document.
	Extract(ctx context.Context, raw *domain.RawDocument) (string, error)
}
