package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/talentia-labs/talentia/internal/core/domain"
	"github.com/talentia-labs/talentia/internal/core/ports/driven"
	"github.com/talentia-labs/talentia/internal/core/ports/driving"
)

// defaultMatchLimit caps rankings when the caller passes no limit.
const defaultMatchLimit = 20

// Ensure MatchService implements the interface.
var _ driving.Matcher = (*MatchService)(nil)

// MatchService ranks stored postings against a candidate's vector.
//
// Ranking is a full scan over every posting with an embedding. At the
// current data scale that is cheaper than maintaining an index; it becomes
// the first thing to revisit if the posting count grows past tens of
// thousands.
type MatchService struct {
	candidates driven.CandidateStore
	jobs       driven.JobStore
	logger     *zap.Logger
}

// NewMatchService creates a matcher over the two stores.
func NewMatchService(candidates driven.CandidateStore, jobs driven.JobStore, logger *zap.Logger) *MatchService {
	return &MatchService{
		candidates: candidates,
		jobs:       jobs,
		logger:     logger.Named("match"),
	}
}

// Match returns up to limit postings ranked by descending cosine similarity
// to the candidate's vector. A candidate without a vector yields
// domain.ErrNoCandidateVector, never an empty ranking.
func (s *MatchService) Match(ctx context.Context, candidateID string, limit int) ([]domain.MatchResult, error) {
	candidate, err := s.candidates.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	if !candidate.HasEmbedding() {
		return nil, domain.ErrNoCandidateVector
	}

	if limit <= 0 {
		limit = defaultMatchLimit
	}

	postings, err := s.jobs.ListJobsWithEmbedding(ctx)
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}

	results := make([]domain.MatchResult, 0, len(postings))
	for i := range postings {
		job := &postings[i]
		results = append(results, domain.MatchResult{
			JobID:      job.ID,
			Similarity: domain.CosineSimilarity(candidate.Embedding, job.Embedding),
			Title:      job.Title,
			Company:    job.Company,
			Location:   job.Location,
			URL:        job.URL,
			Type:       job.Type,
			Salary:     job.Salary,
			Experience: job.Experience,
			Source:     job.Source,
			PostedDate: job.PostedDate,
		})
	}

	// Stable sort keeps store order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > limit {
		results = results[:limit]
	}

	s.logger.Debug("ranked postings",
		zap.String("candidate_id", candidateID),
		zap.Int("scanned", len(postings)),
		zap.Int("returned", len(results)))
	return results, nil
}
