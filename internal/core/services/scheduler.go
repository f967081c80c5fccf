package services

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/talentia-labs/talentia/internal/core/ports/driving"
)

// IngestScheduler triggers a periodic ingestion cycle so the posting feed
// stays fresh without manual scrape requests.
type IngestScheduler struct {
	cron     *cron.Cron
	ingestor driving.Ingestor
	queries  func() []string
	location string
	perQuery int
	spec     string
	logger   *zap.Logger
}

// NewIngestScheduler creates a scheduler firing every intervalHours hours.
// queries is called at the start of each cycle so a hot-reloaded query list
// takes effect without a restart.
func NewIngestScheduler(
	ingestor driving.Ingestor,
	queries func() []string,
	location string,
	perQueryLimit int,
	intervalHours int,
	logger *zap.Logger,
) *IngestScheduler {
	return &IngestScheduler{
		cron:     cron.New(),
		ingestor: ingestor,
		queries:  queries,
		location: location,
		perQuery: perQueryLimit,
		spec:     fmt.Sprintf("@every %dh", intervalHours),
		logger:   logger.Named("scheduler"),
	}
}

// Start registers the cron entry and kicks off one immediate cycle so the
// feed is populated without waiting for the first tick.
func (s *IngestScheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() {
		s.runCycle(ctx)
	}); err != nil {
		return fmt.Errorf("register cron entry: %w", err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("spec", s.spec))

	go s.runCycle(ctx)
	return nil
}

// Stop shuts the scheduler down. Running cycles are not interrupted.
func (s *IngestScheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("scheduler stopped")
}

func (s *IngestScheduler) runCycle(ctx context.Context) {
	queries := s.queries()
	if len(queries) == 0 {
		s.logger.Info("no scrape queries configured, skipping cycle")
		return
	}

	s.logger.Info("ingestion cycle started", zap.Int("queries", len(queries)))
	inserted, err := s.ingestor.Ingest(ctx, queries, s.location, s.perQuery)
	if err != nil {
		s.logger.Error("ingestion cycle failed", zap.Error(err))
		return
	}
	s.logger.Info("ingestion cycle complete", zap.Int("inserted", inserted))
}
