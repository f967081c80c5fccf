package httpapi

import (
	"io"
	"net/http"
	"time"

	"github.com/talentia-labs/talentia/internal/core/domain"
)

// maxUploadBytes bounds a single CV upload.
const maxUploadBytes = 10 << 20

type uploadResponse struct {
	ID             string `json:"id"`
	TextLength     int    `json:"text_length"`
	HasEmbedding   bool   `json:"has_embedding"`
	EmbeddingError string `json:"embedding_error,omitempty"`
}

type candidateResponse struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	TextLength   int       `json:"text_length"`
	HasEmbedding bool      `json:"has_embedding"`
	CreatedAt    time.Time `json:"created_at"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}

	result, err := s.opts.Candidates.Upload(r.Context(), &domain.RawDocument{
		Filename: header.Filename,
		Content:  content,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{
		ID:             result.ID,
		TextLength:     result.TextLength,
		HasEmbedding:   result.HasEmbedding,
		EmbeddingError: result.EmbeddingError,
	})
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	candidate, err := s.opts.Candidates.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidateResponse{
		ID:           candidate.ID,
		Filename:     candidate.Filename,
		TextLength:   len(candidate.FullText),
		HasEmbedding: candidate.HasEmbedding(),
		CreatedAt:    candidate.CreatedAt,
	})
}
