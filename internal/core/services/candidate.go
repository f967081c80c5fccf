package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentia-labs/talentia/internal/core/domain"
	"github.com/talentia-labs/talentia/internal/core/ports/driven"
	"github.com/talentia-labs/talentia/internal/core/ports/driving"
)

// uploadJournalSize bounds the in-memory upload event journal.
const uploadJournalSize = 50

// Ensure CandidateService implements the interface.
var _ driving.CandidateService = (*CandidateService)(nil)

// CandidateService handles CV uploads: extract text, opportunistically
// embed, store.
type CandidateService struct {
	extractor driven.Extractor
	embedder  driven.EmbeddingService
	store     driven.CandidateStore
	logger    *zap.Logger

	mu      sync.Mutex
	journal []driving.UploadEvent
}

// NewCandidateService creates a candidate service. The embedder may be a
// lazily-initialised instance; it is only touched after successful
// extraction.
func NewCandidateService(
	extractor driven.Extractor,
	embedder driven.EmbeddingService,
	store driven.CandidateStore,
	logger *zap.Logger,
) *CandidateService {
	return &CandidateService{
		extractor: extractor,
		embedder:  embedder,
		store:     store,
		logger:    logger.Named("candidate"),
	}
}

// Upload extracts text from the document, attempts to embed it, and stores
// the candidate. Extraction failures reject the upload with a specific
// reason. Embedding failures degrade: the candidate is stored without a
// vector and the result carries the reason.
func (s *CandidateService) Upload(ctx context.Context, raw *domain.RawDocument) (*driving.UploadResult, error) {
	text, err := s.extractor.Extract(ctx, raw)
	if err != nil {
		s.logger.Warn("extraction failed",
			zap.String("filename", raw.Filename),
			zap.Error(err))
		s.record(raw, 0, "", err)
		return nil, err
	}

	candidate := &domain.Candidate{
		ID:        uuid.NewString(),
		FullText:  text,
		Filename:  raw.Filename,
		CreatedAt: time.Now().UTC(),
	}

	var embeddingErr string
	embedding, err := s.embedder.Embed(ctx, text)
	if err != nil {
		// Stored without a vector; a repair run can backfill it.
		embeddingErr = err.Error()
		s.logger.Warn("embedding failed, storing without vector",
			zap.String("candidate_id", candidate.ID),
			zap.Error(err))
	} else {
		candidate.Embedding = embedding
	}

	if err := s.store.InsertCandidate(ctx, candidate); err != nil {
		s.record(raw, len(text), "", err)
		return nil, fmt.Errorf("store candidate: %w", err)
	}

	s.logger.Info("candidate stored",
		zap.String("candidate_id", candidate.ID),
		zap.String("filename", raw.Filename),
		zap.Int("text_length", len(text)),
		zap.Bool("has_embedding", candidate.HasEmbedding()))
	s.record(raw, len(text), candidate.ID, nil)

	return &driving.UploadResult{
		ID:             candidate.ID,
		TextLength:     len(text),
		HasEmbedding:   candidate.HasEmbedding(),
		EmbeddingError: embeddingErr,
	}, nil
}

// Get retrieves a stored candidate.
func (s *CandidateService) Get(ctx context.Context, id string) (*domain.Candidate, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.GetCandidate(ctx, id)
}

// RecentUploads returns the journal of recent upload attempts, newest first.
func (s *CandidateService) RecentUploads() []driving.UploadEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]driving.UploadEvent, len(s.journal))
	for i, ev := range s.journal {
		out[len(s.journal)-1-i] = ev
	}
	return out
}

// record appends one upload attempt to the bounded journal.
func (s *CandidateService) record(raw *domain.RawDocument, textLen int, candidateID string, err error) {
	ev := driving.UploadEvent{
		Filename:    raw.Filename,
		Size:        len(raw.Content),
		TextLength:  textLen,
		CandidateID: candidateID,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	if err != nil {
		ev.Error = err.Error()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.journal = append(s.journal, ev)
	if len(s.journal) > uploadJournalSize {
		s.journal = s.journal[len(s.journal)-uploadJournalSize:]
	}
}
