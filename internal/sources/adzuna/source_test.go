package adzuna

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talentia-labs/talentia/internal/core/domain"
)

const pageFixture = `{
	"count": 2,
	"results": [
		{
			"id": "101",
			"title": "Backend Developer",
			"description": "Go services with PostgreSQL and Docker.",
			"company": {"display_name": "Acme"},
			"location": {"display_name": "Paris, France"},
			"salary_min": 40000,
			"salary_max": 55000,
			"redirect_url": "https://adzuna.example/jobs/101",
			"created": "2026-08-20T09:30:00Z",
			"contract_time": "full_time",
			"contract_type": "permanent"
		},
		{
			"id": "102",
			"title": "Missing Link",
			"company": {"display_name": "Ghost"}
		}
	]
}`

func newTestSource(t *testing.T, handler http.HandlerFunc) *Source {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Config{
		AppID:   "id",
		AppKey:  "key",
		Country: "fr",
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, zap.NewNop())
}

func TestSource_Fetch(t *testing.T) {
	var gotPath string
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "id", r.URL.Query().Get("app_id"))
		assert.Equal(t, "backend developer", r.URL.Query().Get("what"))
		w.Write([]byte(pageFixture))
	})

	postings, err := src.Fetch(context.Background(), "backend developer", "Paris", 10)
	require.NoError(t, err)
	assert.Equal(t, "/fr/search/1", gotPath)

	require.Len(t, postings, 1, "record without a URL must be dropped")
	got := postings[0]
	assert.Equal(t, "Backend Developer", got.Title)
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, "Paris, France", got.Location)
	assert.Equal(t, domain.EmploymentCDI, got.Type)
	assert.Equal(t, "40000 - 55000", got.Salary)
	assert.Equal(t, "https://adzuna.example/jobs/101", got.URL)
	assert.Equal(t, "adzuna", got.Source)
	assert.Contains(t, got.Skills, "PostgreSQL")
	assert.Equal(t, time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC), got.PostedDate)
}

func TestSource_FetchStopsAtLimit(t *testing.T) {
	var pages int
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		pages++
		fmt.Fprintf(w, `{"results": [`)
		for i := 0; i < 50; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"title": "Job %d", "redirect_url": "https://adzuna.example/p%d/%d"}`, i, pages, i)
		}
		fmt.Fprint(w, `]}`)
	})

	postings, err := src.Fetch(context.Background(), "devops", "Paris", 60)
	require.NoError(t, err)
	assert.Len(t, postings, 60)
	assert.Equal(t, 2, pages)
}

func TestSource_FetchKeepsPartialResultOnPageFailure(t *testing.T) {
	var pages int
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		pages++
		if pages > 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"results": [`)
		for i := 0; i < 50; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"title": "Job %d", "redirect_url": "https://adzuna.example/%d"}`, i, i)
		}
		fmt.Fprint(w, `]}`)
	})

	postings, err := src.Fetch(context.Background(), "devops", "Paris", 0)
	assert.NoError(t, err)
	assert.Len(t, postings, 50)
}

func TestSource_FetchAbsorbsUpstreamFailure(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	postings, err := src.Fetch(context.Background(), "devops", "Paris", 10)
	assert.NoError(t, err)
	assert.Empty(t, postings)
}

func TestSource_FetchSkipsWithoutCredentials(t *testing.T) {
	src := New(Config{}, zap.NewNop())
	postings, err := src.Fetch(context.Background(), "devops", "Paris", 10)
	assert.NoError(t, err)
	assert.Empty(t, postings)
}

func TestMapContract(t *testing.T) {
	tests := []struct {
		contractType string
		contractTime string
		want         domain.EmploymentType
	}{
		{"permanent", "", domain.EmploymentCDI},
		{"contract", "full_time", domain.EmploymentCDD},
		{"", "full_time", domain.EmploymentCDI},
		{"", "part_time", domain.EmploymentPartTime},
		{"", "", domain.EmploymentUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, mapContract(tt.contractType, tt.contractTime))
	}
}
