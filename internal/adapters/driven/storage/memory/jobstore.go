package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/talentia-labs/talentia/internal/core/domain"
	"github.com/talentia-labs/talentia/internal/core/ports/driven"
)

// Ensure JobStore implements the interface.
var _ driven.JobStore = (*JobStore)(nil)

// JobStore is an in-memory posting store. Insertion order is preserved so
// the matcher's stable tie-breaking is deterministic.
type JobStore struct {
	mu    sync.RWMutex
	jobs  map[string]domain.JobPosting
	order []string
}

// NewJobStore creates an empty posting store.
func NewJobStore() *JobStore {
	return &JobStore{
		jobs: make(map[string]domain.JobPosting),
	}
}

// InsertJob stores a new posting.
func (s *JobStore) InsertJob(ctx context.Context, job *domain.JobPosting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[job.ID]; ok {
		return domain.ErrAlreadyExists
	}
	s.jobs[job.ID] = *job
	s.order = append(s.order, job.ID)
	return nil
}

// GetJob retrieves a posting by ID.
func (s *JobStore) GetJob(ctx context.Context, id string) (*domain.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &job, nil
}

// JobExists reports whether a posting exists with the URL or the
// (title, company) composite. The composite only participates when both
// fields are present: minimal-mode records carry neither, and an empty
// composite would collapse every such record onto the first one stored.
func (s *JobStore) JobExists(ctx context.Context, url, title, company string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	useComposite := strings.TrimSpace(title) != "" && strings.TrimSpace(company) != ""
	key := (&domain.JobPosting{Title: title, Company: company}).DedupKey()
	for _, id := range s.order {
		job := s.jobs[id]
		if job.URL == url {
			return true, nil
		}
		if useComposite && job.DedupKey() == key {
			return true, nil
		}
	}
	return false, nil
}

// ListJobs returns postings matching the filter, paginated in insertion
// order.
func (s *JobStore) ListJobs(ctx context.Context, filter domain.JobFilter, offset, limit int) ([]domain.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.filtered(filter)
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// CountJobs returns the number of postings matching the filter.
func (s *JobStore) CountJobs(ctx context.Context, filter domain.JobFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.filtered(filter))), nil
}

// ListJobsWithEmbedding returns every posting carrying a vector.
func (s *JobStore) ListJobsWithEmbedding(ctx context.Context) ([]domain.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.JobPosting
	for _, id := range s.order {
		job := s.jobs[id]
		if job.HasEmbedding() {
			out = append(out, job)
		}
	}
	return out, nil
}

// ListJobsMissingEmbedding returns up to limit postings without a vector.
func (s *JobStore) ListJobsMissingEmbedding(ctx context.Context, limit int) ([]domain.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.JobPosting
	for _, id := range s.order {
		if limit > 0 && len(out) >= limit {
			break
		}
		job := s.jobs[id]
		if !job.HasEmbedding() {
			out = append(out, job)
		}
	}
	return out, nil
}

// SetJobEmbedding backfills the embedding field.
func (s *JobStore) SetJobEmbedding(ctx context.Context, id string, embedding []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	job.Embedding = embedding
	s.jobs[id] = job
	return nil
}

// DeleteJobsBySource removes every posting with the given source tag.
func (s *JobStore) DeleteJobsBySource(ctx context.Context, source string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []string
	var removed int64
	for _, id := range s.order {
		if s.jobs[id].Source == source {
			delete(s.jobs, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	return removed, nil
}

func (s *JobStore) filtered(filter domain.JobFilter) []domain.JobPosting {
	var out []domain.JobPosting
	for _, id := range s.order {
		job := s.jobs[id]
		if matchesFilter(&job, filter) {
			out = append(out, job)
		}
	}
	return out
}

func matchesFilter(job *domain.JobPosting, filter domain.JobFilter) bool {
	if filter.Query != "" {
		q := strings.ToLower(filter.Query)
		if !strings.Contains(strings.ToLower(job.Title), q) &&
			!strings.Contains(strings.ToLower(job.Company), q) &&
			!strings.Contains(strings.ToLower(job.Description), q) {
			return false
		}
	}
	if filter.Location != "" &&
		!strings.Contains(strings.ToLower(job.Location), strings.ToLower(filter.Location)) {
		return false
	}
	if filter.Type != "" &&
		!strings.Contains(strings.ToLower(string(job.Type)), strings.ToLower(filter.Type)) {
		return false
	}
	if filter.Source != "" && job.Source != filter.Source {
		return false
	}
	return true
}
