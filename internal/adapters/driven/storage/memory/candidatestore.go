package memory

import (
	"context"
	"sync"

	"github.com/talentia-labs/talentia/internal/core/domain"
	"github.com/talentia-labs/talentia/internal/core/ports/driven"
)

// Ensure CandidateStore implements the interface.
var _ driven.CandidateStore = (*CandidateStore)(nil)

// CandidateStore is an in-memory candidate store.
type CandidateStore struct {
	mu         sync.RWMutex
	candidates map[string]domain.Candidate
	order      []string
}

// NewCandidateStore creates an empty candidate store.
func NewCandidateStore() *CandidateStore {
	return &CandidateStore{
		candidates: make(map[string]domain.Candidate),
	}
}

// InsertCandidate stores a new candidate.
func (s *CandidateStore) InsertCandidate(ctx context.Context, c *domain.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.candidates[c.ID]; ok {
		return domain.ErrAlreadyExists
	}
	s.candidates[c.ID] = *c
	s.order = append(s.order, c.ID)
	return nil
}

// GetCandidate retrieves a candidate by ID.
func (s *CandidateStore) GetCandidate(ctx context.Context, id string) (*domain.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.candidates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

// SetCandidateEmbedding backfills the embedding field.
func (s *CandidateStore) SetCandidateEmbedding(ctx context.Context, id string, embedding []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.candidates[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Embedding = embedding
	s.candidates[id] = c
	return nil
}

// ListCandidatesMissingEmbedding returns up to limit candidates without a
// vector, in insertion order.
func (s *CandidateStore) ListCandidatesMissingEmbedding(ctx context.Context, limit int) ([]domain.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Candidate
	for _, id := range s.order {
		if limit > 0 && len(out) >= limit {
			break
		}
		c := s.candidates[id]
		if !c.HasEmbedding() {
			out = append(out, c)
		}
	}
	return out, nil
}
