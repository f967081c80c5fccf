// Package linkedin scrapes job postings from the public LinkedIn jobs
// search page.
package linkedin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/talentia-labs/talentia/internal/core/domain"
	"github.com/talentia-labs/talentia/internal/core/ports/driven"
	"github.com/talentia-labs/talentia/internal/sources"
)

const (
	// DefaultBaseURL is the public jobs search page.
	DefaultBaseURL = "https://www.linkedin.com/jobs/search/"

	sourceName = "linkedin"

	// requestsPerSecond stays conservative; the public page throttles and
	// eventually blocks aggressive scrapers.
	requestsPerSecond = 0.5
)

// cardSelectors locate job cards in the search results markup. LinkedIn has
// shipped several variants of this page, so each is tried in turn.
var cardSelectors = []string{
	".job-search-card",
	"[data-job-id]",
	".base-card",
	"li[data-job-id]",
}

// Ensure Source implements the interface.
var _ driven.JobSource = (*Source)(nil)

// Config holds the LinkedIn adapter settings.
type Config struct {
	// BaseURL overrides the search page, for tests.
	BaseURL string

	// Timeout bounds each page request.
	Timeout time.Duration

	// Minimal restricts extraction to URL and employment type, skipping
	// the per-field selector probing. Faster and less likely to trip
	// anti-bot heuristics; callers opt in explicitly.
	Minimal bool
}

// Source scrapes the public jobs search page and normalises its cards.
type Source struct {
	cfg    Config
	client *sources.Client
	logger *zap.Logger
}

// New creates a LinkedIn source adapter.
func New(cfg Config, logger *zap.Logger) *Source {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Source{
		cfg:    cfg,
		client: sources.NewBrowserClient(cfg.Timeout, requestsPerSecond),
		logger: logger.Named(sourceName),
	}
}

// Name identifies the adapter in logs and stored records.
func (s *Source) Name() string { return sourceName }

// Fetch scrapes search results for the query and location. All network,
// parsing, and anti-bot failures are absorbed into an empty result; the
// returned error is non-nil only when the context is cancelled.
func (s *Source) Fetch(ctx context.Context, query, location string, limit int) ([]domain.JobPosting, error) {
	doc, err := s.searchPage(ctx, query, location)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn("search page fetch failed", zap.String("query", query), zap.Error(err))
		return nil, nil
	}

	cards := findCards(doc)
	if cards == nil {
		s.logger.Warn("no job cards found", zap.String("query", query))
		return nil, nil
	}

	now := time.Now().UTC()
	var postings []domain.JobPosting
	cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if limit > 0 && len(postings) >= limit {
			return false
		}
		posting, ok := s.extractCard(card, now)
		if ok {
			postings = append(postings, posting)
		}
		return true
	})

	s.logger.Info("scraped postings",
		zap.String("query", query),
		zap.Int("count", len(postings)),
		zap.Bool("minimal", s.cfg.Minimal))
	return postings, nil
}

func (s *Source) searchPage(ctx context.Context, query, location string) (*goquery.Document, error) {
	params := url.Values{}
	params.Set("keywords", query)
	params.Set("location", location)
	params.Set("sortBy", "DD")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrSourceUnavailable, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse: %s", domain.ErrSourceUnavailable, err)
	}
	return doc, nil
}

func findCards(doc *goquery.Document) *goquery.Selection {
	for _, selector := range cardSelectors {
		if cards := doc.Find(selector); cards.Length() > 0 {
			return cards
		}
	}
	return nil
}

// extractCard normalises one job card. Cards without a resolvable URL are
// dropped, everything else is best-effort.
func (s *Source) extractCard(card *goquery.Selection, now time.Time) (domain.JobPosting, bool) {
	jobURL := sources.FirstNonEmpty(
		sources.SelectorAttr(card, "a.base-card__full-link", "href"),
		sources.SelectorAttr(card, `a[href*="/jobs/view/"]`, "href"),
		sources.SelectorAttr(card, `a[href*="linkedin.com/jobs"]`, "href"),
	)
	if jobURL == "" {
		return domain.JobPosting{}, false
	}

	cardText := card.Text()
	posting := domain.JobPosting{
		URL:       jobURL,
		Type:      inferType(cardText),
		Source:    sourceName,
		ScrapedAt: now,
	}

	if s.cfg.Minimal {
		return posting, true
	}

	fields := sources.FieldTable{
		{Name: "title", Strategies: []sources.Strategy{
			sources.SelectorText(card, ".base-search-card__title"),
			sources.SelectorText(card, "h3"),
			sources.SelectorText(card, `[data-test-id="job-card-title"]`),
		}},
		{Name: "company", Strategies: []sources.Strategy{
			sources.SelectorText(card, ".base-search-card__subtitle"),
			sources.SelectorText(card, ".base-search-card__subtitle a"),
			sources.SelectorText(card, `[data-test-id="job-card-company-name"]`),
		}},
		{Name: "location", Strategies: []sources.Strategy{
			sources.SelectorText(card, ".job-search-card__location"),
			sources.SelectorText(card, `[data-test-id="job-card-location"]`),
		}},
		{Name: "posted", Strategies: []sources.Strategy{
			sources.SelectorAttr(card, ".job-search-card__listdate", "datetime"),
			sources.SelectorAttr(card, "time", "datetime"),
		}},
	}.Extract()

	posting.Title = fields["title"]
	posting.Company = fields["company"]
	posting.Location = fields["location"]
	posting.PostedDate = parsePosted(fields["posted"], now)
	posting.Skills = domain.ExtractSkills(cardText)
	return posting, true
}

// inferType recognises contract keywords in the card text, defaulting to CDI
// since LinkedIn cards rarely state the contract form for permanent roles.
func inferType(text string) domain.EmploymentType {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(text, "CDD") || strings.Contains(lower, "contract"):
		return domain.EmploymentCDD
	case strings.Contains(lower, "stage") || strings.Contains(lower, "intern"):
		return domain.EmploymentStage
	case strings.Contains(lower, "freelance"):
		return domain.EmploymentFreelance
	default:
		return domain.EmploymentCDI
	}
}

func parsePosted(datetime string, fallback time.Time) time.Time {
	if datetime == "" {
		return fallback
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, datetime); err == nil {
			return ts.UTC()
		}
	}
	return fallback
}
