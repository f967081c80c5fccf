package driving

import (
	"context"

	"github.com/talentia-labs/talentia/internal/core/domain"
)

// CandidateService handles CV uploads.
type CandidateService interface {
	// Upload extracts text from the document, opportunistically embeds it,
	// and stores the candidate. Extraction failures surface with a specific
	// reason; an embedding failure does not reject the upload.
	Upload(ctx context.Context, raw *domain.RawDocument) (*UploadResult, error)

	// Get retrieves a stored candidate.
	Get(ctx context.Context, id string) (*domain.Candidate, error)

	// RecentUploads returns the most recent upload events, newest first.
	RecentUploads() []UploadEvent
}

// UploadResult is returned to the uploader on success.
type UploadResult struct {
	// ID is the stored candidate's identifier.
	ID string

	// TextLength is the number of characters extracted.
	TextLength int

	// HasEmbedding reports whether a vector was generated at upload time.
	HasEmbedding bool

	// EmbeddingError carries the reason embedding was skipped, if any.
	EmbeddingError string
}

// UploadEvent records one upload attempt for the debug journal.
type UploadEvent struct {
	// Filename is the declared upload filename.
	Filename string

	// Size is the upload size in bytes.
	Size int

	// TextLength is the extracted character count (zero on failure).
	TextLength int

	// CandidateID is set when the upload was accepted.
	CandidateID string

	// Error is the failure reason, empty on success.
	Error string

	// Timestamp is when the attempt happened.
	Timestamp string
}
