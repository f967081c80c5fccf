package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentia-labs/talentia/internal/core/domain"
)

func TestCandidateStore_InsertAndGet(t *testing.T) {
	store := NewCandidateStore()
	ctx := context.Background()

	c := &domain.Candidate{ID: "c1", FullText: "some resume text", Filename: "cv.pdf"}
	require.NoError(t, store.InsertCandidate(ctx, c))

	got, err := store.GetCandidate(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", got.Filename)

	_, err = store.GetCandidate(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.InsertCandidate(ctx, c), domain.ErrAlreadyExists)
}

func TestCandidateStore_EmbeddingBackfill(t *testing.T) {
	store := NewCandidateStore()
	ctx := context.Background()

	require.NoError(t, store.InsertCandidate(ctx, &domain.Candidate{ID: "c1", FullText: "a"}))
	require.NoError(t, store.InsertCandidate(ctx, &domain.Candidate{
		ID: "c2", FullText: "b", Embedding: []float32{1, 2},
	}))
	require.NoError(t, store.InsertCandidate(ctx, &domain.Candidate{ID: "c3", FullText: "c"}))

	missing, err := store.ListCandidatesMissingEmbedding(ctx, 10)
	require.NoError(t, err)
	require.Len(t, missing, 2)
	assert.Equal(t, "c1", missing[0].ID)
	assert.Equal(t, "c3", missing[1].ID)

	limited, err := store.ListCandidatesMissingEmbedding(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	require.NoError(t, store.SetCandidateEmbedding(ctx, "c1", []float32{3, 4}))
	got, err := store.GetCandidate(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, got.HasEmbedding())

	assert.ErrorIs(t, store.SetCandidateEmbedding(ctx, "missing", nil), domain.ErrNotFound)
}
