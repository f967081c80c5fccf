package driven

import (
	"context"

	"github.com/talentia-labs/talentia/internal/core/domain"
)

// JobSource fetches best-effort normalised postings from one external
// provider (REST API, HTML scraping, or otherwise).
//
// Contract: upstream failures (network errors, timeouts, parse failures,
// anti-bot blocks) are absorbed by the implementation, logged, and reported
// as an empty slice with a nil error. A non-nil error is returned only for
// context cancellation. Returned postings carry no embedding; records whose
// URL could not be extracted are dropped before return.
type JobSource interface {
	// Name returns the source tag recorded on every posting it produces.
	Name() string

	// Fetch returns up to limit postings for the query and location.
	Fetch(ctx context.Context, query, location string, limit int) ([]domain.JobPosting, error)
}
