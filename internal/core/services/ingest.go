package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentia-labs/talentia/internal/core/domain"
	"github.com/talentia-labs/talentia/internal/core/ports/driven"
	"github.com/talentia-labs/talentia/internal/core/ports/driving"
)

// MockSourceTag marks placeholder postings substituted when every live
// source comes up empty.
const MockSourceTag = "mock"

// mockCatalog is the fixed fallback set. It keeps the matcher from being
// starved before the first successful live scrape.
var mockCatalog = []domain.JobPosting{
	{
		Title:       "Senior Data Scientist",
		Company:     "TechCorp Morocco",
		Description: "We are seeking an experienced Data Scientist with Python, Machine Learning, and SQL skills.",
		URL:         "https://www.linkedin.com/jobs/view/senior-data-scientist-morocco",
		Location:    "Casablanca, Morocco",
		Type:        domain.EmploymentCDI,
		Salary:      "45,000 - 65,000 MAD/month",
		Experience:  "3-5 ans",
		Source:      MockSourceTag,
	},
	{
		Title:       "Machine Learning Engineer",
		Company:     "AI Innovations Morocco",
		Description: "Join our ML team to build cutting-edge AI solutions with Python, TensorFlow, and AWS.",
		URL:         "https://www.linkedin.com/jobs/view/ml-engineer-morocco",
		Location:    "Rabat, Morocco",
		Type:        domain.EmploymentCDI,
		Salary:      "50,000 - 70,000 MAD/month",
		Experience:  "2-4 ans",
		Source:      MockSourceTag,
	},
}

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService aggregates postings from the configured job sources into
// the store.
type IngestService struct {
	sources   []driven.JobSource
	embedder  driven.EmbeddingService
	store     driven.JobStore
	allowMock bool
	logger    *zap.Logger
}

// NewIngestService creates an aggregator over the given sources. Sources are
// invoked in the order given, which fixes first-seen-wins deduplication.
// When allowMock is set, an ingestion run that yields nothing substitutes
// the fixed placeholder catalog.
func NewIngestService(
	sources []driven.JobSource,
	embedder driven.EmbeddingService,
	store driven.JobStore,
	allowMock bool,
	logger *zap.Logger,
) *IngestService {
	return &IngestService{
		sources:   sources,
		embedder:  embedder,
		store:     store,
		allowMock: allowMock,
		logger:    logger.Named("ingest"),
	}
}

// Ingest fetches postings for every query term, deduplicates by URL,
// opportunistically embeds, and reconciles each record against the store.
// It returns the number of newly inserted postings. Source and per-record
// failures are logged and absorbed, never raised; the returned error is
// non-nil only on context cancellation.
func (s *IngestService) Ingest(ctx context.Context, queries []string, location string, perQueryLimit int) (int, error) {
	var collected []domain.JobPosting
	for _, query := range queries {
		for _, source := range s.sources {
			postings, err := source.Fetch(ctx, query, location, perQueryLimit)
			if err != nil {
				// Sources absorb upstream failures; an error here means
				// the run itself was cancelled.
				return 0, err
			}
			collected = append(collected, postings...)
		}
	}

	unique := dedupByURL(collected)
	s.logger.Info("collected postings",
		zap.Int("raw", len(collected)),
		zap.Int("unique", len(unique)))

	if len(unique) == 0 && s.allowMock {
		s.logger.Info("no live postings, substituting mock catalog")
		unique = make([]domain.JobPosting, len(mockCatalog))
		copy(unique, mockCatalog)
		now := time.Now().UTC()
		for i := range unique {
			unique[i].Skills = domain.ExtractSkills(unique[i].Description)
			unique[i].ScrapedAt = now
			unique[i].PostedDate = now
		}
	}

	inserted := 0
	var failures []string
	for i := range unique {
		job := &unique[i]

		if !job.HasEmbedding() {
			embedding, err := s.embedder.Embed(ctx, job.EmbeddingText())
			if err != nil {
				if ctx.Err() != nil {
					return inserted, ctx.Err()
				}
				// Non-fatal: stored without a vector, repaired later.
				s.logger.Warn("embedding failed",
					zap.String("title", job.Title),
					zap.Error(err))
			} else {
				job.Embedding = embedding
			}
		}

		ok, err := s.reconcile(ctx, job)
		if err != nil {
			if ctx.Err() != nil {
				return inserted, ctx.Err()
			}
			failures = append(failures, fmt.Sprintf("%s: %v", job.URL, err))
			continue
		}
		if ok {
			inserted++
		}
	}

	if len(failures) > 0 {
		s.logger.Warn("some postings failed to reconcile",
			zap.Int("failed", len(failures)),
			zap.Strings("failures", failures))
	}
	s.logger.Info("ingestion finished",
		zap.Int("inserted", inserted),
		zap.Int("skipped", len(unique)-inserted-len(failures)))
	return inserted, nil
}

// reconcile inserts the posting unless the store already has its URL or its
// (title, company) composite. The composite only applies when the record
// carries a real title and company. Reports whether an insert happened.
//
// Two concurrent ingestion runs can both pass the existence check before
// either inserts, so duplicates remain possible under concurrency. The
// store layer carries no unique index to back this up.
func (s *IngestService) reconcile(ctx context.Context, job *domain.JobPosting) (bool, error) {
	title, company := job.Title, job.Company
	if !job.HasIdentity() {
		title, company = "", ""
	}
	exists, err := s.store.JobExists(ctx, job.URL, title, company)
	if err != nil {
		return false, fmt.Errorf("existence check: %w", err)
	}
	if exists {
		return false, nil
	}

	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if err := s.store.InsertJob(ctx, job); err != nil {
		return false, fmt.Errorf("insert: %w", err)
	}
	return true, nil
}

// dedupByURL keeps the first occurrence of every URL, preserving encounter
// order. Records without a URL were already dropped by the sources.
func dedupByURL(postings []domain.JobPosting) []domain.JobPosting {
	seen := make(map[string]struct{}, len(postings))
	out := make([]domain.JobPosting, 0, len(postings))
	for _, p := range postings {
		if _, ok := seen[p.URL]; ok {
			continue
		}
		seen[p.URL] = struct{}{}
		out = append(out, p)
	}
	return out
}
