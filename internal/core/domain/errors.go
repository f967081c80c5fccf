package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	// The ingestion pipeline maps dedup-key collisions onto this error.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Extraction errors. These surface to the uploader with a specific reason.

	// ErrUnsupportedFormat indicates the file extension is outside {pdf, doc, docx}.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrExtractionFailed indicates the format-specific decoder failed.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrEmptyDocument indicates the extracted text, after trimming, is below
	// the minimum-content threshold. A short result is a failure, not a result.
	ErrEmptyDocument = errors.New("document contains no usable text")

	// Embedding errors.

	// ErrModelUnavailable indicates the embedding model could not be loaded or
	// reached. Callers that embed opportunistically degrade to storing the
	// record without a vector; callers that require embeddings surface it.
	ErrModelUnavailable = errors.New("embedding model unavailable")

	// Matching errors.

	// ErrNoCandidateVector indicates the candidate has no embedding.
	// Matching must report this instead of returning an empty ranking,
	// so the caller knows to trigger a repair rather than see "no matches".
	ErrNoCandidateVector = errors.New("candidate has no embedding vector")

	// Source errors.

	// ErrSourceUnavailable indicates a single job source failed (network,
	// parsing, anti-bot detection). Adapters absorb it into an empty result;
	// it never crosses the aggregator boundary.
	ErrSourceUnavailable = errors.New("job source unavailable")

	// Auth errors.

	// ErrAuthInvalid indicates the credentials or token are invalid.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrAuthExpired indicates the session token has expired.
	ErrAuthExpired = errors.New("authentication expired")
)
