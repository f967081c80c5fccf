package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/talentia-labs/talentia/internal/core/ports/driven"
	"github.com/talentia-labs/talentia/internal/core/ports/driving"
)

// defaultRepairBatch bounds one repair pass per collection.
const defaultRepairBatch = 100

// Ensure RepairService implements the interface.
var _ driving.Repairer = (*RepairService)(nil)

// RepairService backfills embedding vectors for records stored without one.
// Unlike opportunistic embedding during upload and ingestion, a repair run
// treats the model as a hard dependency: if it cannot be loaded at all, the
// run fails with domain.ErrModelUnavailable.
type RepairService struct {
	candidates driven.CandidateStore
	jobs       driven.JobStore
	embedder   driven.EmbeddingService
	logger     *zap.Logger
}

// NewRepairService creates a repair service over the two stores.
func NewRepairService(
	candidates driven.CandidateStore,
	jobs driven.JobStore,
	embedder driven.EmbeddingService,
	logger *zap.Logger,
) *RepairService {
	return &RepairService{
		candidates: candidates,
		jobs:       jobs,
		embedder:   embedder,
		logger:     logger.Named("repair"),
	}
}

// Repair backfills up to batchSize missing vectors in each collection.
// Per-record failures are collected in the report and never abort the
// batch.
func (s *RepairService) Repair(ctx context.Context, batchSize int) (*driving.RepairReport, error) {
	if batchSize <= 0 {
		batchSize = defaultRepairBatch
	}

	// Force model construction up front so a dead model fails the run
	// instead of producing a report full of identical failures.
	if err := s.embedder.Ping(ctx); err != nil {
		return nil, err
	}

	report := &driving.RepairReport{}

	candidates, err := s.candidates.ListCandidatesMissingEmbedding(ctx, batchSize)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	for i := range candidates {
		c := &candidates[i]
		embedding, err := s.embedder.Embed(ctx, c.FullText)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			report.Failures = append(report.Failures, fmt.Sprintf("%s: %v", c.ID, err))
			continue
		}
		if err := s.candidates.SetCandidateEmbedding(ctx, c.ID, embedding); err != nil {
			report.Failures = append(report.Failures, fmt.Sprintf("%s: %v", c.ID, err))
			continue
		}
		report.CandidatesUpdated++
	}

	jobs, err := s.jobs.ListJobsMissingEmbedding(ctx, batchSize)
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}
	for i := range jobs {
		job := &jobs[i]
		embedding, err := s.embedder.Embed(ctx, job.EmbeddingText())
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			report.Failures = append(report.Failures, fmt.Sprintf("%s: %v", job.ID, err))
			continue
		}
		if err := s.jobs.SetJobEmbedding(ctx, job.ID, embedding); err != nil {
			report.Failures = append(report.Failures, fmt.Sprintf("%s: %v", job.ID, err))
			continue
		}
		report.JobsUpdated++
	}

	s.logger.Info("repair finished",
		zap.Int("candidates_updated", report.CandidatesUpdated),
		zap.Int("jobs_updated", report.JobsUpdated),
		zap.Int("failures", len(report.Failures)))
	return report, nil
}
