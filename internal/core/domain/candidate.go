package domain

import "time"

// RawDocument carries uploaded bytes plus the declared filename.
// It is transient: consumed once by extraction, never persisted.
type RawDocument struct {
	// Filename is the name declared by the uploader. Only its extension
	// participates in format dispatch.
	Filename string

	// Content is the raw file bytes.
	Content []byte
}

// Candidate represents an uploaded CV after text extraction.
// It is immutable once stored, except for embedding backfill.
type Candidate struct {
	// ID is the unique identifier for the candidate.
	ID string

	// FullText is the complete extracted text of the CV.
	FullText string

	// Embedding is the semantic vector for FullText. Nil means "not yet
	// computed" (generation failed or was skipped), which is distinct from
	// a zero vector. A repair run may fill it in later.
	Embedding []float32

	// Filename is the original upload filename, kept for display.
	Filename string

	// CreatedAt is when the upload was accepted.
	CreatedAt time.Time
}

// HasEmbedding reports whether the candidate vector has been computed.
func (c *Candidate) HasEmbedding() bool {
	return len(c.Embedding) > 0
}
