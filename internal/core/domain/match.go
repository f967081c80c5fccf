package domain

import "time"

// MatchResult pairs a posting with its similarity to a candidate vector.
// Results are derived on every query and never persisted.
type MatchResult struct {
	// JobID references the matched posting.
	JobID string

	// Similarity is the cosine similarity in [-1, 1].
	Similarity float64

	// Denormalised display fields, copied from the posting so callers do
	// not need a second store round-trip.
	Title      string
	Company    string
	Location   string
	URL        string
	Type       EmploymentType
	Salary     string
	Experience string
	Source     string
	PostedDate time.Time
}
