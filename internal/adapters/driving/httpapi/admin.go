package httpapi

import (
	"net/http"

	"github.com/talentia-labs/talentia/internal/core/services"
)

type repairResponse struct {
	CandidatesUpdated int      `json:"candidates_updated"`
	JobsUpdated       int      `json:"jobs_updated"`
	Failures          []string `json:"failures,omitempty"`
}

// handleReembed backfills missing embedding vectors synchronously. The model
// is a hard dependency here: a dead model fails the whole request with 503.
func (s *Server) handleReembed(w http.ResponseWriter, r *http.Request) {
	batch := intParam(r, "batch", 0)

	report, err := s.opts.Repairer.Repair(r.Context(), batch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, repairResponse{
		CandidatesUpdated: report.CandidatesUpdated,
		JobsUpdated:       report.JobsUpdated,
		Failures:          report.Failures,
	})
}

// handlePurgeMock removes the placeholder catalog. The ingestion pipeline
// itself never deletes, so clearing mock data is an explicit operator
// action.
func (s *Server) handlePurgeMock(w http.ResponseWriter, r *http.Request) {
	removed, err := s.opts.Jobs.DeleteJobsBySource(r.Context(), services.MockSourceTag)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}

type uploadEventJSON struct {
	Filename    string `json:"filename"`
	Size        int    `json:"size"`
	TextLength  int    `json:"text_length"`
	CandidateID string `json:"candidate_id,omitempty"`
	Error       string `json:"error,omitempty"`
	Timestamp   string `json:"timestamp"`
}

func (s *Server) handleUploadJournal(w http.ResponseWriter, _ *http.Request) {
	events := s.opts.Candidates.RecentUploads()
	out := make([]uploadEventJSON, 0, len(events))
	for _, e := range events {
		out = append(out, uploadEventJSON{
			Filename:    e.Filename,
			Size:        e.Size,
			TextLength:  e.TextLength,
			CandidateID: e.CandidateID,
			Error:       e.Error,
			Timestamp:   e.Timestamp,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"uploads": out})
}
