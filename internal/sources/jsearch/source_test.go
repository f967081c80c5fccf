package jsearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talentia-labs/talentia/internal/core/domain"
)

const searchFixture = `{
	"data": [
		{
			"job_title": "Data Scientist",
			"employer_name": "TechCorp",
			"job_description": "Build models with Python and SQL.",
			"job_apply_link": "https://example.com/jobs/1",
			"job_city": "Casablanca",
			"job_country": "Morocco",
			"job_employment_type": "FULLTIME",
			"job_min_salary": 45000,
			"job_max_salary": 65000,
			"job_salary_currency": "MAD",
			"job_salary_period": "MONTH",
			"job_required_experience": {"required_experience_in_months": 36},
			"job_required_skills": ["Python"],
			"job_posted_at_timestamp": 1756000000
		},
		{
			"job_title": "ML Engineer",
			"employer_name": "AI Labs",
			"job_description": "Remote role.",
			"job_google_link": "https://example.com/jobs/2",
			"job_country": "Morocco",
			"job_employment_type": "CONTRACT",
			"job_is_remote": true
		},
		{
			"job_title": "No URL Role",
			"employer_name": "Ghost Inc"
		}
	]
}`

func newTestSource(t *testing.T, handler http.HandlerFunc) (*Source, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	src := New(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5 * time.Second}, zap.NewNop())
	return src, server
}

func TestSource_Fetch(t *testing.T) {
	var gotReq *http.Request
	src, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		w.Write([]byte(searchFixture))
	})

	postings, err := src.Fetch(context.Background(), "data scientist", "Morocco", 10)
	require.NoError(t, err)

	require.NotNil(t, gotReq)
	assert.Equal(t, "test-key", gotReq.Header.Get("X-RapidAPI-Key"))
	assert.Equal(t, "data scientist in Morocco", gotReq.URL.Query().Get("query"))

	require.Len(t, postings, 2, "record without a URL must be dropped")

	first := postings[0]
	assert.Equal(t, "Data Scientist", first.Title)
	assert.Equal(t, "TechCorp", first.Company)
	assert.Equal(t, "Casablanca, Morocco", first.Location)
	assert.Equal(t, domain.EmploymentCDI, first.Type)
	assert.Equal(t, "45,000 - 65,000 MAD/MONTH", first.Salary)
	assert.Equal(t, "3+ ans", first.Experience)
	assert.Equal(t, "https://example.com/jobs/1", first.URL)
	assert.Equal(t, "jsearch", first.Source)
	assert.Contains(t, first.Skills, "Python")
	assert.Contains(t, first.Skills, "SQL")
	assert.Equal(t, time.Unix(1756000000, 0).UTC(), first.PostedDate)
	assert.Nil(t, first.Embedding)

	second := postings[1]
	assert.Equal(t, "https://example.com/jobs/2", second.URL, "google link is the fallback")
	assert.Equal(t, "Morocco (Remote)", second.Location)
	assert.Equal(t, domain.EmploymentCDD, second.Type)
	assert.Empty(t, second.Salary)
}

func TestSource_FetchAppliesLimit(t *testing.T) {
	src, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchFixture))
	})

	postings, err := src.Fetch(context.Background(), "data scientist", "Morocco", 1)
	require.NoError(t, err)
	assert.Len(t, postings, 1)
}

func TestSource_FetchAbsorbsUpstreamFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, _ := newTestSource(t, tt.handler)
			postings, err := src.Fetch(context.Background(), "devops", "Morocco", 10)
			assert.NoError(t, err)
			assert.Empty(t, postings)
		})
	}
}

func TestSource_FetchSkipsWithoutAPIKey(t *testing.T) {
	src := New(Config{}, zap.NewNop())
	postings, err := src.Fetch(context.Background(), "devops", "Morocco", 10)
	assert.NoError(t, err)
	assert.Empty(t, postings)
}

func TestSource_FetchReportsCancellation(t *testing.T) {
	src, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchFixture))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Fetch(ctx, "devops", "Morocco", 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatSalary(t *testing.T) {
	tests := []struct {
		name                  string
		min, max              float64
		currency, period, want string
	}{
		{"both bounds", 45000, 65000, "MAD", "MONTH", "45,000 - 65,000 MAD/MONTH"},
		{"defaults applied", 1000, 2000, "", "", "1,000 - 2,000 MAD/MONTH"},
		{"missing min", 0, 65000, "MAD", "MONTH", ""},
		{"missing max", 45000, 0, "MAD", "MONTH", ""},
		{"large values", 1250000, 2000000, "USD", "YEAR", "1,250,000 - 2,000,000 USD/YEAR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatSalary(tt.min, tt.max, tt.currency, tt.period))
		})
	}
}

func TestFormatExperience(t *testing.T) {
	tests := []struct {
		months int
		want   string
	}{
		{0, ""},
		{6, "< 1 an"},
		{12, "1+ ans"},
		{36, "3+ ans"},
		{60, "5+ ans"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatExperience(tt.months))
	}
}
