package driving

import (
	"context"

	"github.com/talentia-labs/talentia/internal/core/domain"
)

// Matcher ranks stored postings against a candidate's embedding vector.
type Matcher interface {
	// Match returns up to limit postings ranked by descending similarity to
	// the candidate's vector. Returns domain.ErrNoCandidateVector when the
	// candidate has no embedding; an empty ranking is never substituted for
	// that condition.
	Match(ctx context.Context, candidateID string, limit int) ([]domain.MatchResult, error)
}
