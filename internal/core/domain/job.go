package domain

import (
	"strings"
	"time"
)

// EmploymentType is the normalised contract type of a posting.
type EmploymentType string

// Employment types follow the French contract taxonomy used across the product.
const (
	EmploymentCDI       EmploymentType = "CDI"
	EmploymentCDD       EmploymentType = "CDD"
	EmploymentStage     EmploymentType = "Stage"
	EmploymentFreelance EmploymentType = "Freelance"
	EmploymentPartTime  EmploymentType = "Part-time"
	EmploymentTemporary EmploymentType = "Temporaire"
	EmploymentUnknown   EmploymentType = "Unknown"
)

// employmentTypeMapping maps upstream API type strings (upper-cased) to the
// internal enumeration. Unrecognised values normalise to Unknown.
var employmentTypeMapping = map[string]EmploymentType{
	"FULLTIME":   EmploymentCDI,
	"FULL-TIME":  EmploymentCDI,
	"CONTRACTOR": EmploymentCDD,
	"CONTRACT":   EmploymentCDD,
	"INTERN":     EmploymentStage,
	"INTERNSHIP": EmploymentStage,
	"PARTTIME":   EmploymentPartTime,
	"PART-TIME":  EmploymentPartTime,
	"TEMPORARY":  EmploymentTemporary,
	"FREELANCE":  EmploymentFreelance,
}

// Placeholder values substituted by source adapters when an upstream record
// omits the field. Every record missing a title gets the same placeholder,
// so placeholders never count as dedup identity.
const (
	UnknownTitle   = "Unknown Position"
	UnknownCompany = "Unknown Company"
)

// NormaliseEmploymentType converts an upstream employment-type string into
// the internal enumeration.
func NormaliseEmploymentType(apiType string) EmploymentType {
	key := strings.ToUpper(strings.TrimSpace(apiType))
	if t, ok := employmentTypeMapping[key]; ok {
		return t
	}
	return EmploymentUnknown
}

// JobPosting represents a normalised job offer from an external source.
// Postings are immutable once stored, except for embedding backfill; a
// re-scrape that collides on a dedup key is dropped, never merged.
type JobPosting struct {
	// ID is the unique identifier for the posting.
	ID string

	// Title is the position title.
	Title string

	// Company is the hiring company name.
	Company string

	// Description is the full posting text.
	Description string

	// Location is the free-text location, possibly with a remote marker.
	Location string

	// Type is the normalised employment type.
	Type EmploymentType

	// Salary is free-text salary information, empty when unknown.
	Salary string

	// Experience is the free-text experience requirement, empty when unknown.
	Experience string

	// URL is the source posting URL. It is the primary dedup key; the
	// (Title, Company) composite is the secondary key when URLs are mangled.
	URL string

	// Source tags which adapter produced the posting (e.g. "jsearch",
	// "adzuna", "linkedin", "mock").
	Source string

	// Skills are tech keywords detected in the posting text.
	Skills []string

	// Embedding is the semantic vector. Nil means "not yet computed".
	Embedding []float32

	// PostedDate is when the source says the job was published.
	PostedDate time.Time

	// ScrapedAt is when the adapter fetched the posting.
	ScrapedAt time.Time
}

// HasEmbedding reports whether the posting vector has been computed.
func (j *JobPosting) HasEmbedding() bool {
	return len(j.Embedding) > 0
}

// EmbeddingText returns the canonical text embedded for a posting.
// Keeping the format fixed makes embeddings reproducible across ingestion
// and repair runs.
func (j *JobPosting) EmbeddingText() string {
	return j.Title + "\n" + j.Company + "\n" + j.Description
}

// HasIdentity reports whether Title and Company carry real extracted values
// usable as the composite dedup key. Empty fields and the Unknown
// placeholders do not count.
func (j *JobPosting) HasIdentity() bool {
	title := strings.TrimSpace(j.Title)
	company := strings.TrimSpace(j.Company)
	if title == "" || company == "" {
		return false
	}
	return title != UnknownTitle && company != UnknownCompany
}

// DedupKey returns the composite fallback key used when two postings must be
// compared without trusting URLs.
func (j *JobPosting) DedupKey() string {
	return strings.ToLower(strings.TrimSpace(j.Title)) + "\x00" +
		strings.ToLower(strings.TrimSpace(j.Company))
}

// JobFilter narrows posting queries at the store boundary.
// String fields match by case-insensitive substring; zero values are ignored.
type JobFilter struct {
	// Query matches title, company, or description.
	Query string

	// Location matches the location field.
	Location string

	// Type matches the employment type field.
	Type string

	// Source matches the source tag exactly.
	Source string
}
