package driven

import (
	"context"

	"github.com/talentia-labs/talentia/internal/core/domain"
)

// CandidateStore persists uploaded candidates.
type CandidateStore interface {
	// InsertCandidate stores a new candidate.
	InsertCandidate(ctx context.Context, c *domain.Candidate) error

	// GetCandidate retrieves a candidate by ID.
	// Returns domain.ErrNotFound when absent.
	GetCandidate(ctx context.Context, id string) (*domain.Candidate, error)

	// SetCandidateEmbedding backfills the embedding field. This is the only
	// mutation candidates support.
	SetCandidateEmbedding(ctx context.Context, id string, embedding []float32) error

	// ListCandidatesMissingEmbedding returns up to limit candidates whose
	// embedding is absent, for repair runs.
	ListCandidatesMissingEmbedding(ctx context.Context, limit int) ([]domain.Candidate, error)
}

// JobStore persists job postings.
type JobStore interface {
	// InsertJob stores a new posting.
	InsertJob(ctx context.Context, job *domain.JobPosting) error

	// GetJob retrieves a posting by ID.
	// Returns domain.ErrNotFound when absent.
	GetJob(ctx context.Context, id string) (*domain.JobPosting, error)

	// JobExists reports whether a posting already exists with the given URL
	// or with the given (title, company) composite.
	JobExists(ctx context.Context, url, title, company string) (bool, error)

	// ListJobs returns postings matching the filter, paginated.
	ListJobs(ctx context.Context, filter domain.JobFilter, offset, limit int) ([]domain.JobPosting, error)

	// CountJobs returns the number of postings matching the filter.
	CountJobs(ctx context.Context, filter domain.JobFilter) (int64, error)

	// ListJobsWithEmbedding returns every posting whose embedding is present.
	// This backs the matcher's full scan.
	ListJobsWithEmbedding(ctx context.Context) ([]domain.JobPosting, error)

	// ListJobsMissingEmbedding returns up to limit postings whose embedding
	// is absent, for repair runs.
	ListJobsMissingEmbedding(ctx context.Context, limit int) ([]domain.JobPosting, error)

	// SetJobEmbedding backfills the embedding field.
	SetJobEmbedding(ctx context.Context, id string, embedding []float32) error

	// DeleteJobsBySource removes every posting with the given source tag.
	// Used to purge the mock catalog once live data arrives.
	DeleteJobsBySource(ctx context.Context, source string) (int64, error)
}

// UserStore persists user accounts.
type UserStore interface {
	// InsertUser stores a new user. Returns domain.ErrAlreadyExists when the
	// email is taken.
	InsertUser(ctx context.Context, u *domain.User) error

	// GetUserByEmail retrieves a user by email.
	// Returns domain.ErrNotFound when absent.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetUser retrieves a user by ID.
	// Returns domain.ErrNotFound when absent.
	GetUser(ctx context.Context, id string) (*domain.User, error)
}
