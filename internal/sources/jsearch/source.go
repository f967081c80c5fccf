// Package jsearch fetches job postings from the JSearch REST API on
// RapidAPI.
package jsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/talentia-labs/talentia/internal/core/domain"
	"github.com/talentia-labs/talentia/internal/core/ports/driven"
	"github.com/talentia-labs/talentia/internal/sources"
)

const (
	// DefaultBaseURL is the JSearch search endpoint host.
	DefaultBaseURL = "https://jsearch.p.rapidapi.com"

	rapidAPIHost = "jsearch.p.rapidapi.com"
	sourceName   = "jsearch"

	// requestsPerSecond keeps the adapter under the RapidAPI free-tier
	// throttle.
	requestsPerSecond = 1.0
)

// Ensure Source implements the interface.
var _ driven.JobSource = (*Source)(nil)

// Config holds the JSearch adapter settings.
type Config struct {
	// APIKey is the RapidAPI key. When empty, Fetch returns no postings
	// and logs a warning rather than failing.
	APIKey string

	// BaseURL overrides the API host, for tests.
	BaseURL string

	// Timeout bounds each search request.
	Timeout time.Duration
}

// Source queries the JSearch API and normalises its results.
type Source struct {
	cfg    Config
	client *sources.Client
	logger *zap.Logger
}

// New creates a JSearch source adapter.
func New(cfg Config, logger *zap.Logger) *Source {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Source{
		cfg:    cfg,
		client: sources.NewClient(cfg.Timeout, requestsPerSecond),
		logger: logger.Named(sourceName),
	}
}

// Name identifies the adapter in logs and stored records.
func (s *Source) Name() string { return sourceName }

// searchResponse mirrors the top-level JSearch JSON response.
type searchResponse struct {
	Data []jobRecord `json:"data"`
}

// jobRecord mirrors a single JSearch result.
type jobRecord struct {
	Title          string   `json:"job_title"`
	Employer       string   `json:"employer_name"`
	Description    string   `json:"job_description"`
	ApplyLink      string   `json:"job_apply_link"`
	GoogleLink     string   `json:"job_google_link"`
	City           string   `json:"job_city"`
	Country        string   `json:"job_country"`
	EmploymentType string   `json:"job_employment_type"`
	IsRemote       bool     `json:"job_is_remote"`
	MinSalary      float64  `json:"job_min_salary"`
	MaxSalary      float64  `json:"job_max_salary"`
	SalaryCurrency string   `json:"job_salary_currency"`
	SalaryPeriod   string   `json:"job_salary_period"`
	RequiredSkills []string `json:"job_required_skills"`
	Experience     struct {
		Months int `json:"required_experience_in_months"`
	} `json:"job_required_experience"`
	PostedTimestamp int64 `json:"job_posted_at_timestamp"`
}

// Fetch searches JSearch for postings matching the query and location. All
// upstream failures are absorbed into an empty result; the returned error is
// non-nil only when the context is cancelled.
func (s *Source) Fetch(ctx context.Context, query, location string, limit int) ([]domain.JobPosting, error) {
	if s.cfg.APIKey == "" {
		s.logger.Warn("no API key configured, skipping")
		return nil, nil
	}

	records, err := s.search(ctx, query, location)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn("search failed", zap.String("query", query), zap.Error(err))
		return nil, nil
	}

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	now := time.Now().UTC()
	postings := make([]domain.JobPosting, 0, len(records))
	for _, rec := range records {
		jobURL := sources.FirstNonEmpty(
			sources.Literal(rec.ApplyLink),
			sources.Literal(rec.GoogleLink),
		)
		if jobURL == "" {
			continue
		}

		posting := domain.JobPosting{
			Title:       sources.FirstNonEmpty(sources.Literal(rec.Title), sources.Literal(domain.UnknownTitle)),
			Company:     sources.FirstNonEmpty(sources.Literal(rec.Employer), sources.Literal(domain.UnknownCompany)),
			Description: rec.Description,
			Location:    buildLocation(rec.City, rec.Country, rec.IsRemote),
			Type:        domain.NormaliseEmploymentType(rec.EmploymentType),
			Salary:      formatSalary(rec.MinSalary, rec.MaxSalary, rec.SalaryCurrency, rec.SalaryPeriod),
			Experience:  formatExperience(rec.Experience.Months),
			URL:         jobURL,
			Source:      sourceName,
			Skills:      mergeSkills(rec.RequiredSkills, rec.Description+" "+rec.Title),
			PostedDate:  postedDate(rec.PostedTimestamp, now),
			ScrapedAt:   now,
		}
		postings = append(postings, posting)
	}

	s.logger.Info("fetched postings",
		zap.String("query", query),
		zap.Int("count", len(postings)))
	return postings, nil
}

func (s *Source) search(ctx context.Context, query, location string) ([]jobRecord, error) {
	params := url.Values{}
	params.Set("query", fmt.Sprintf("%s in %s", query, location))
	params.Set("page", "1")
	params.Set("num_pages", "1")
	params.Set("date_posted", "month")

	reqURL := s.cfg.BaseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-RapidAPI-Key", s.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", rapidAPIHost)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %s", domain.ErrSourceUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrSourceUnavailable, resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode: %s", domain.ErrSourceUnavailable, err)
	}
	return parsed.Data, nil
}

func buildLocation(city, country string, remote bool) string {
	loc := country
	if city != "" {
		loc = city + ", " + country
	}
	if remote {
		loc += " (Remote)"
	}
	return loc
}

// formatSalary renders "45,000 - 65,000 MAD/MONTH", empty when either bound
// is missing.
func formatSalary(min, max float64, currency, period string) string {
	if min <= 0 || max <= 0 {
		return ""
	}
	if currency == "" {
		currency = "MAD"
	}
	if period == "" {
		period = "MONTH"
	}
	return fmt.Sprintf("%s - %s %s/%s", groupThousands(min), groupThousands(max), currency, period)
}

// formatExperience renders required months as "N+ ans", or "< 1 an" under a
// year. Empty when the upstream reports nothing.
func formatExperience(months int) string {
	if months <= 0 {
		return ""
	}
	years := float64(months) / 12
	if years < 1 {
		return "< 1 an"
	}
	return fmt.Sprintf("%.0f+ ans", years)
}

// groupThousands renders a rounded amount with comma separators.
func groupThousands(v float64) string {
	raw := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(raw, "-")
	if neg {
		raw = raw[1:]
	}
	var b strings.Builder
	for i, r := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// mergeSkills combines upstream-declared skills with ones recognised in the
// posting text, without duplicates.
func mergeSkills(declared []string, text string) []string {
	seen := make(map[string]struct{}, len(declared))
	var out []string
	for _, skill := range append(declared, domain.ExtractSkills(text)...) {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill)
	}
	return out
}

func postedDate(timestamp int64, fallback time.Time) time.Time {
	if timestamp <= 0 {
		return fallback
	}
	return time.Unix(timestamp, 0).UTC()
}
