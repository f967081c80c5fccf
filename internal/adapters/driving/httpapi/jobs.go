package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/talentia-labs/talentia/internal/core/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type jobResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Salary      string    `json:"salary,omitempty"`
	Experience  string    `json:"experience,omitempty"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Skills      []string  `json:"skills,omitempty"`
	PostedDate  time.Time `json:"posted_date"`
}

type jobListResponse struct {
	Total  int64         `json:"total"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
	Jobs   []jobResponse `json:"jobs"`
}

type matchResponse struct {
	CandidateID string      `json:"candidate_id"`
	Matches     []matchItem `json:"matches"`
}

type matchItem struct {
	JobID      string    `json:"job_id"`
	Similarity float64   `json:"similarity"`
	Title      string    `json:"title"`
	Company    string    `json:"company"`
	Location   string    `json:"location"`
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	Salary     string    `json:"salary,omitempty"`
	Experience string    `json:"experience,omitempty"`
	Source     string    `json:"source"`
	PostedDate time.Time `json:"posted_date"`
}

// scrapeRequest accepts either a single query string or a list; both forms
// feed the same ingestion run.
type scrapeRequest struct {
	Query    string   `json:"query"`
	Queries  []string `json:"queries"`
	Location string   `json:"location"`
	Limit    int      `json:"limit"`
}

func (r *scrapeRequest) queryList() []string {
	if r.Query != "" {
		return append([]string{r.Query}, r.Queries...)
	}
	return r.Queries
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.JobFilter{
		Query:    q.Get("query"),
		Location: q.Get("location"),
		Type:     q.Get("type"),
		Source:   q.Get("source"),
	}
	s.listJobs(w, r, filter)
}

func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	s.listJobs(w, r, domain.JobFilter{Query: r.URL.Query().Get("q")})
}

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request, filter domain.JobFilter) {
	offset := intParam(r, "offset", 0)
	limit := intParam(r, "limit", defaultPageSize)
	if limit > maxPageSize {
		limit = maxPageSize
	}

	jobs, err := s.opts.Jobs.ListJobs(r.Context(), filter, offset, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	total, err := s.opts.Jobs.CountJobs(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	out := jobListResponse{Total: total, Offset: offset, Limit: limit, Jobs: []jobResponse{}}
	for i := range jobs {
		out.Jobs = append(out.Jobs, jobJSON(&jobs[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.opts.Jobs.GetJob(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobJSON(job))
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("candidateID")
	limit := intParam(r, "limit", 0)

	results, err := s.opts.Matcher.Match(r.Context(), candidateID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	out := matchResponse{CandidateID: candidateID, Matches: []matchItem{}}
	for _, m := range results {
		out.Matches = append(out.Matches, matchItem{
			JobID:      m.JobID,
			Similarity: m.Similarity,
			Title:      m.Title,
			Company:    m.Company,
			Location:   m.Location,
			URL:        m.URL,
			Type:       string(m.Type),
			Salary:     m.Salary,
			Experience: m.Experience,
			Source:     m.Source,
			PostedDate: m.PostedDate,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	req := scrapeRequest{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, domain.ErrInvalidInput)
			return
		}
	}

	queries := req.queryList()
	if len(queries) == 0 && s.opts.Queries != nil {
		queries = s.opts.Queries()
	}
	location := req.Location
	if location == "" {
		location = s.opts.Location
	}
	limit := req.Limit
	if limit <= 0 {
		limit = s.opts.PerQueryLimit
	}

	if len(queries) == 0 || s.opts.Tasks == nil || s.opts.Ingestor == nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}

	ok := s.opts.Tasks.Enqueue(ingestTask(s.opts.Ingestor, queries, location, limit))
	if !ok {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "scrape queue full"})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"status":  "queued",
		"queries": queries,
	})
}

func jobJSON(j *domain.JobPosting) jobResponse {
	return jobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Company:     j.Company,
		Description: j.Description,
		Location:    j.Location,
		Type:        string(j.Type),
		Salary:      j.Salary,
		Experience:  j.Experience,
		URL:         j.URL,
		Source:      j.Source,
		Skills:      j.Skills,
		PostedDate:  j.PostedDate,
	}
}

func intParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
