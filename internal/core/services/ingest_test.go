package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talentia-labs/talentia/internal/adapters/driven/storage/memory"
	"github.com/talentia-labs/talentia/internal/core/domain"
	"github.com/talentia-labs/talentia/internal/core/ports/driven"
)

func posting(url, title, company string) domain.JobPosting {
	return domain.JobPosting{
		URL:     url,
		Title:   title,
		Company: company,
		Source:  "test",
	}
}

func TestIngestService_Ingest(t *testing.T) {
	store := memory.NewJobStore()
	src := &fakeSource{name: "a", batches: [][]domain.JobPosting{{
		posting("https://x/1", "Data Scientist", "TechCorp"),
		posting("https://x/2", "Backend Developer", "Acme"),
	}}}
	svc := NewIngestService(
		[]driven.JobSource{src},
		&fakeEmbedder{vector: []float32{1, 0}},
		store, false, zap.NewNop(),
	)

	inserted, err := svc.Ingest(context.Background(), []string{"dev"}, "Morocco", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	count, err := store.CountJobs(context.Background(), domain.JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	jobs, err := store.ListJobsWithEmbedding(context.Background())
	require.NoError(t, err)
	assert.Len(t, jobs, 2, "postings are embedded before insert")
	assert.NotEmpty(t, jobs[0].ID)
}

func TestIngestService_DeduplicatesByURLFirstWins(t *testing.T) {
	store := memory.NewJobStore()
	first := &fakeSource{name: "a", batches: [][]domain.JobPosting{{
		posting("https://x/1", "Original Title", "TechCorp"),
	}}}
	second := &fakeSource{name: "b", batches: [][]domain.JobPosting{{
		posting("https://x/1", "Duplicate Title", "TechCorp"),
		posting("https://x/2", "Another Role", "Acme"),
	}}}
	svc := NewIngestService(
		[]driven.JobSource{first, second},
		&fakeEmbedder{vector: []float32{1}},
		store, false, zap.NewNop(),
	)

	inserted, err := svc.Ingest(context.Background(), []string{"dev"}, "", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	jobs, err := store.ListJobs(context.Background(), domain.JobFilter{}, 0, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Original Title", jobs[0].Title, "first occurrence wins")
}

func TestIngestService_SkipsExistingRecords(t *testing.T) {
	store := memory.NewJobStore()
	require.NoError(t, store.InsertJob(context.Background(), &domain.JobPosting{
		ID: "existing", URL: "https://x/1", Title: "Data Scientist", Company: "TechCorp",
	}))

	src := &fakeSource{name: "a", batches: [][]domain.JobPosting{{
		posting("https://x/1", "Other", "Other"),
		posting("https://y/9", "Data Scientist", "TechCorp"),
		posting("https://x/2", "New Role", "Acme"),
	}}}
	svc := NewIngestService(
		[]driven.JobSource{src},
		&fakeEmbedder{vector: []float32{1}},
		store, false, zap.NewNop(),
	)

	inserted, err := svc.Ingest(context.Background(), []string{"dev"}, "", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted, "URL match and (title, company) match both skip")
}

func TestIngestService_MockFallback(t *testing.T) {
	t.Run("enabled and starved", func(t *testing.T) {
		store := memory.NewJobStore()
		svc := NewIngestService(
			[]driven.JobSource{&fakeSource{name: "empty"}},
			&fakeEmbedder{vector: []float32{1}},
			store, true, zap.NewNop(),
		)

		inserted, err := svc.Ingest(context.Background(), []string{"dev"}, "", 10)
		require.NoError(t, err)
		assert.Equal(t, len(mockCatalog), inserted)

		mocks, err := store.ListJobs(context.Background(), domain.JobFilter{Source: MockSourceTag}, 0, 0)
		require.NoError(t, err)
		assert.Len(t, mocks, len(mockCatalog), "every stored posting carries the mock tag")
		assert.NotEmpty(t, mocks[0].Skills)
	})

	t.Run("disabled", func(t *testing.T) {
		store := memory.NewJobStore()
		svc := NewIngestService(
			[]driven.JobSource{&fakeSource{name: "empty"}},
			&fakeEmbedder{vector: []float32{1}},
			store, false, zap.NewNop(),
		)

		inserted, err := svc.Ingest(context.Background(), []string{"dev"}, "", 10)
		require.NoError(t, err)
		assert.Zero(t, inserted)
	})

	t.Run("not substituted when live data exists", func(t *testing.T) {
		store := memory.NewJobStore()
		src := &fakeSource{name: "a", batches: [][]domain.JobPosting{{
			posting("https://x/1", "Live Role", "Acme"),
		}}}
		svc := NewIngestService(
			[]driven.JobSource{src},
			&fakeEmbedder{vector: []float32{1}},
			store, true, zap.NewNop(),
		)

		_, err := svc.Ingest(context.Background(), []string{"dev"}, "", 10)
		require.NoError(t, err)

		mocks, err := store.CountJobs(context.Background(), domain.JobFilter{Source: MockSourceTag})
		require.NoError(t, err)
		assert.Zero(t, mocks)
	})

}

func TestIngestService_MinimalRecordsDedupByURLOnly(t *testing.T) {
	store := memory.NewJobStore()
	src := &fakeSource{name: "linkedin", batches: [][]domain.JobPosting{{
		{URL: "https://www.linkedin.com/jobs/view/1", Type: domain.EmploymentCDI, Source: "linkedin"},
		{URL: "https://www.linkedin.com/jobs/view/2", Type: domain.EmploymentCDD, Source: "linkedin"},
	}}}
	svc := NewIngestService(
		[]driven.JobSource{src},
		&fakeEmbedder{vector: []float32{1}},
		store, false, zap.NewNop(),
	)

	inserted, err := svc.Ingest(context.Background(), []string{"dev"}, "", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted, "empty title and company never act as a dedup key")

	count, err := store.CountJobs(context.Background(), domain.JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestIngestService_PlaceholderIdentityDedupsByURLOnly(t *testing.T) {
	store := memory.NewJobStore()
	src := &fakeSource{name: "jsearch", batches: [][]domain.JobPosting{{
		{URL: "https://jobs.example/a", Title: domain.UnknownTitle, Company: domain.UnknownCompany, Source: "jsearch"},
		{URL: "https://jobs.example/b", Title: domain.UnknownTitle, Company: domain.UnknownCompany, Source: "jsearch"},
	}}}
	svc := NewIngestService(
		[]driven.JobSource{src},
		&fakeEmbedder{vector: []float32{1}},
		store, false, zap.NewNop(),
	)

	inserted, err := svc.Ingest(context.Background(), []string{"dev"}, "", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted, "placeholder title and company never act as a dedup key")
}

func TestIngestService_EmbeddingFailureIsNonFatal(t *testing.T) {
	store := memory.NewJobStore()
	src := &fakeSource{name: "a", batches: [][]domain.JobPosting{{
		posting("https://x/1", "Role A", "Acme"),
		posting("https://x/2", "Role B", "Acme"),
	}}}
	svc := NewIngestService(
		[]driven.JobSource{src},
		&fakeEmbedder{vector: []float32{1}, failErr: domain.ErrModelUnavailable, failAfter: 1},
		store, false, zap.NewNop(),
	)

	inserted, err := svc.Ingest(context.Background(), []string{"dev"}, "", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted, "both records stored despite one embedding failure")

	missing, err := store.ListJobsMissingEmbedding(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, missing, 1)
}

func TestIngestService_CancellationPropagates(t *testing.T) {
	svc := NewIngestService(
		[]driven.JobSource{&fakeSource{name: "a", err: context.Canceled}},
		&fakeEmbedder{vector: []float32{1}},
		memory.NewJobStore(), false, zap.NewNop(),
	)

	_, err := svc.Ingest(context.Background(), []string{"dev"}, "", 10)
	assert.ErrorIs(t, err, context.Canceled)
}
