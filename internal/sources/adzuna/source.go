// Package adzuna fetches job postings from the Adzuna public API.
package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/talentia-labs/talentia/internal/core/domain"
	"github.com/talentia-labs/talentia/internal/core/ports/driven"
	"github.com/talentia-labs/talentia/internal/sources"
)

const (
	// DefaultBaseURL is the Adzuna jobs API root.
	DefaultBaseURL = "https://api.adzuna.com/v1/api/jobs"

	sourceName = "adzuna"
	pageSize   = 50
	maxPages   = 3

	requestsPerSecond = 2.0
)

// Ensure Source implements the interface.
var _ driven.JobSource = (*Source)(nil)

// Config holds the Adzuna adapter settings.
type Config struct {
	// AppID and AppKey are the Adzuna application credentials. When either
	// is empty, Fetch returns no postings and logs a warning.
	AppID  string
	AppKey string

	// Country selects the market endpoint ("fr", "gb", "us", ...).
	Country string

	// BaseURL overrides the API root, for tests.
	BaseURL string

	// Timeout bounds each page request.
	Timeout time.Duration
}

// Source queries the Adzuna API page by page and normalises its results.
type Source struct {
	cfg    Config
	client *sources.Client
	logger *zap.Logger
}

// New creates an Adzuna source adapter.
func New(cfg Config, logger *zap.Logger) *Source {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Country == "" {
		cfg.Country = "fr"
	}
	return &Source{
		cfg:    cfg,
		client: sources.NewClient(cfg.Timeout, requestsPerSecond),
		logger: logger.Named(sourceName),
	}
}

// Name identifies the adapter in logs and stored records.
func (s *Source) Name() string { return sourceName }

// apiResponse mirrors the top-level Adzuna JSON response.
type apiResponse struct {
	Results []apiResult `json:"results"`
	Count   int         `json:"count"`
}

// apiResult mirrors a single Adzuna listing.
type apiResult struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	SalaryMin   float64 `json:"salary_min"`
	SalaryMax   float64 `json:"salary_max"`
	RedirectURL string  `json:"redirect_url"`
	Created     string  `json:"created"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	ContractTime string `json:"contract_time"`
	ContractType string `json:"contract_type"`
}

// Fetch retrieves postings for the query and location, paging until limit,
// an empty page, or maxPages. Upstream failures after the first page keep the
// partial result; the returned error is non-nil only on context cancellation.
func (s *Source) Fetch(ctx context.Context, query, location string, limit int) ([]domain.JobPosting, error) {
	if s.cfg.AppID == "" || s.cfg.AppKey == "" {
		s.logger.Warn("no credentials configured, skipping")
		return nil, nil
	}

	now := time.Now().UTC()
	var postings []domain.JobPosting

	for page := 1; page <= maxPages; page++ {
		results, err := s.fetchPage(ctx, query, location, page)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("page fetch failed",
				zap.String("query", query),
				zap.Int("page", page),
				zap.Error(err))
			break
		}
		if len(results) == 0 {
			break
		}

		for _, r := range results {
			if r.RedirectURL == "" {
				continue
			}
			postings = append(postings, domain.JobPosting{
				Title:       sources.FirstNonEmpty(sources.Literal(r.Title), sources.Literal(domain.UnknownTitle)),
				Company:     sources.FirstNonEmpty(sources.Literal(r.Company.DisplayName), sources.Literal(domain.UnknownCompany)),
				Description: r.Description,
				Location:    r.Location.DisplayName,
				Type:        mapContract(r.ContractType, r.ContractTime),
				Salary:      formatSalary(r.SalaryMin, r.SalaryMax),
				URL:         r.RedirectURL,
				Source:      sourceName,
				Skills:      domain.ExtractSkills(r.Description + " " + r.Title),
				PostedDate:  parseCreated(r.Created, now),
				ScrapedAt:   now,
			})
			if limit > 0 && len(postings) >= limit {
				s.logLength(query, len(postings))
				return postings, nil
			}
		}

		if len(results) < pageSize {
			break
		}
	}

	s.logLength(query, len(postings))
	return postings, nil
}

func (s *Source) logLength(query string, n int) {
	s.logger.Info("fetched postings", zap.String("query", query), zap.Int("count", n))
}

func (s *Source) fetchPage(ctx context.Context, query, location string, page int) ([]apiResult, error) {
	endpoint := fmt.Sprintf("%s/%s/search/%d", s.cfg.BaseURL, s.cfg.Country, page)

	params := url.Values{}
	params.Set("app_id", s.cfg.AppID)
	params.Set("app_key", s.cfg.AppKey)
	params.Set("results_per_page", strconv.Itoa(pageSize))
	params.Set("what", query)
	params.Set("where", location)
	params.Set("content-type", "application/json")
	params.Set("sort_by", "date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

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

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode: %s", domain.ErrSourceUnavailable, err)
	}
	return parsed.Results, nil
}

// mapContract translates Adzuna's contract_type/contract_time pair into the
// internal employment taxonomy. contract_type is the stronger signal.
func mapContract(contractType, contractTime string) domain.EmploymentType {
	switch contractType {
	case "permanent":
		return domain.EmploymentCDI
	case "contract":
		return domain.EmploymentCDD
	}
	switch contractTime {
	case "full_time":
		return domain.EmploymentCDI
	case "part_time":
		return domain.EmploymentPartTime
	}
	return domain.EmploymentUnknown
}

func formatSalary(min, max float64) string {
	if min <= 0 || max <= 0 {
		return ""
	}
	return fmt.Sprintf("%.0f - %.0f", min, max)
}

// parseCreated accepts Adzuna's ISO-8601 created stamp, falling back to the
// scrape time when absent or malformed.
func parseCreated(created string, fallback time.Time) time.Time {
	if created == "" {
		return fallback
	}
	ts, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return fallback
	}
	return ts.UTC()
}
