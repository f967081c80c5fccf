package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentia-labs/talentia/internal/core/domain"
)

func seedJobs(t *testing.T) *JobStore {
	t.Helper()
	store := NewJobStore()
	jobs := []domain.JobPosting{
		{
			ID: "j1", Title: "Data Scientist", Company: "TechCorp",
			Description: "Python and SQL.", Location: "Casablanca",
			Type: domain.EmploymentCDI, Source: "jsearch",
			URL: "https://example.com/1", Embedding: []float32{1, 0},
		},
		{
			ID: "j2", Title: "Backend Developer", Company: "Acme",
			Description: "Go services.", Location: "Rabat",
			Type: domain.EmploymentCDD, Source: "adzuna",
			URL: "https://example.com/2",
		},
		{
			ID: "j3", Title: "Placeholder", Company: "Mock Inc",
			Location: "Casablanca", Type: domain.EmploymentCDI,
			Source: "mock", URL: "https://example.com/3",
		},
	}
	for i := range jobs {
		require.NoError(t, store.InsertJob(context.Background(), &jobs[i]))
	}
	return store
}

func TestJobStore_InsertAndGet(t *testing.T) {
	store := seedJobs(t)

	got, err := store.GetJob(context.Background(), "j1")
	require.NoError(t, err)
	assert.Equal(t, "Data Scientist", got.Title)

	_, err = store.GetJob(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = store.InsertJob(context.Background(), &domain.JobPosting{ID: "j1"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestJobStore_JobExists(t *testing.T) {
	store := seedJobs(t)
	ctx := context.Background()

	tests := []struct {
		name                string
		url, title, company string
		want                bool
	}{
		{"by url", "https://example.com/1", "Other", "Other", true},
		{"by title and company", "https://other.com", "Data Scientist", "TechCorp", true},
		{"title company case insensitive", "https://other.com", "data scientist", "TECHCORP", true},
		{"absent", "https://other.com", "Other", "Other", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.JobExists(ctx, tt.url, tt.title, tt.company)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJobStore_JobExistsIgnoresEmptyComposite(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()

	require.NoError(t, store.InsertJob(ctx, &domain.JobPosting{
		ID: "m1", URL: "https://example.com/view/1", Type: domain.EmploymentCDI,
	}))

	exists, err := store.JobExists(ctx, "https://example.com/view/2", "", "")
	require.NoError(t, err)
	assert.False(t, exists, "records without title and company match by URL only")

	exists, err = store.JobExists(ctx, "https://example.com/view/1", "", "")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestJobStore_ListJobsFilter(t *testing.T) {
	store := seedJobs(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		filter  domain.JobFilter
		wantIDs []string
	}{
		{"no filter", domain.JobFilter{}, []string{"j1", "j2", "j3"}},
		{"query matches description", domain.JobFilter{Query: "python"}, []string{"j1"}},
		{"query matches company", domain.JobFilter{Query: "acme"}, []string{"j2"}},
		{"location", domain.JobFilter{Location: "casablanca"}, []string{"j1", "j3"}},
		{"type", domain.JobFilter{Type: "CDD"}, []string{"j2"}},
		{"source exact", domain.JobFilter{Source: "mock"}, []string{"j3"}},
		{"combined", domain.JobFilter{Location: "Casablanca", Source: "jsearch"}, []string{"j1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := store.ListJobs(ctx, tt.filter, 0, 0)
			require.NoError(t, err)
			ids := make([]string, len(jobs))
			for i, j := range jobs {
				ids[i] = j.ID
			}
			assert.Equal(t, tt.wantIDs, ids)

			count, err := store.CountJobs(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.wantIDs)), count)
		})
	}
}

func TestJobStore_ListJobsPagination(t *testing.T) {
	store := seedJobs(t)
	ctx := context.Background()

	page, err := store.ListJobs(ctx, domain.JobFilter{}, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "j2", page[0].ID)

	empty, err := store.ListJobs(ctx, domain.JobFilter{}, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestJobStore_EmbeddingQueries(t *testing.T) {
	store := seedJobs(t)
	ctx := context.Background()

	withVec, err := store.ListJobsWithEmbedding(ctx)
	require.NoError(t, err)
	require.Len(t, withVec, 1)
	assert.Equal(t, "j1", withVec[0].ID)

	missing, err := store.ListJobsMissingEmbedding(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, missing, 2)

	require.NoError(t, store.SetJobEmbedding(ctx, "j2", []float32{0, 1}))
	missing, err = store.ListJobsMissingEmbedding(ctx, 10)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "j3", missing[0].ID)

	assert.ErrorIs(t, store.SetJobEmbedding(ctx, "missing", nil), domain.ErrNotFound)
}

func TestJobStore_DeleteJobsBySource(t *testing.T) {
	store := seedJobs(t)
	ctx := context.Background()

	removed, err := store.DeleteJobsBySource(ctx, "mock")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	count, err := store.CountJobs(ctx, domain.JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = store.GetJob(ctx, "j3")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
