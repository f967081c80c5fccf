package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talentia-labs/talentia/internal/adapters/driven/storage/memory"
	"github.com/talentia-labs/talentia/internal/core/domain"
)

func matchFixture(t *testing.T, candidateVec []float32, jobVecs [][]float32) (*MatchService, string) {
	t.Helper()
	ctx := context.Background()

	candidates := memory.NewCandidateStore()
	require.NoError(t, candidates.InsertCandidate(ctx, &domain.Candidate{
		ID:        "cand",
		FullText:  "text",
		Embedding: candidateVec,
	}))

	jobs := memory.NewJobStore()
	for i, vec := range jobVecs {
		require.NoError(t, jobs.InsertJob(ctx, &domain.JobPosting{
			ID:        fmt.Sprintf("job-%d", i),
			Title:     fmt.Sprintf("Role %d", i),
			URL:       fmt.Sprintf("https://x/%d", i),
			Embedding: vec,
		}))
	}

	return NewMatchService(candidates, jobs, zap.NewNop()), "cand"
}

func TestMatchService_RanksBySimilarityDescending(t *testing.T) {
	// Candidate along the x axis; similarities are the jobs' x components.
	svc, id := matchFixture(t, []float32{1, 0}, [][]float32{
		{0.9, 0.436},
		{0.1, 0.995},
		{0.95, 0.312},
		{0.5, 0.866},
		{0.2, 0.98},
	})

	results, err := svc.Match(context.Background(), id, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "job-2", results[0].JobID)
	assert.Equal(t, "job-0", results[1].JobID)
	assert.Equal(t, "job-3", results[2].JobID)
	assert.InDelta(t, 0.95, results[0].Similarity, 0.01)
	assert.GreaterOrEqual(t, results[0].Similarity, results[1].Similarity)
	assert.GreaterOrEqual(t, results[1].Similarity, results[2].Similarity)
}

func TestMatchService_NoCandidateVector(t *testing.T) {
	svc, _ := matchFixture(t, nil, [][]float32{{1, 0}})

	results, err := svc.Match(context.Background(), "cand", 10)
	assert.ErrorIs(t, err, domain.ErrNoCandidateVector)
	assert.Nil(t, results, "never an empty success for a missing vector")
}

func TestMatchService_UnknownCandidate(t *testing.T) {
	svc, _ := matchFixture(t, []float32{1}, nil)

	_, err := svc.Match(context.Background(), "missing", 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMatchService_SkipsPostingsWithoutVectors(t *testing.T) {
	ctx := context.Background()
	candidates := memory.NewCandidateStore()
	require.NoError(t, candidates.InsertCandidate(ctx, &domain.Candidate{
		ID: "cand", Embedding: []float32{1, 0},
	}))

	jobs := memory.NewJobStore()
	require.NoError(t, jobs.InsertJob(ctx, &domain.JobPosting{
		ID: "with-vec", URL: "https://x/1", Embedding: []float32{1, 0},
	}))
	require.NoError(t, jobs.InsertJob(ctx, &domain.JobPosting{
		ID: "without-vec", URL: "https://x/2",
	}))

	svc := NewMatchService(candidates, jobs, zap.NewNop())
	results, err := svc.Match(ctx, "cand", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "with-vec", results[0].JobID)
}

func TestMatchService_DefaultLimit(t *testing.T) {
	vecs := make([][]float32, defaultMatchLimit+5)
	for i := range vecs {
		vecs[i] = []float32{1, 0}
	}
	svc, id := matchFixture(t, []float32{1, 0}, vecs)

	results, err := svc.Match(context.Background(), id, 0)
	require.NoError(t, err)
	assert.Len(t, results, defaultMatchLimit)
}
