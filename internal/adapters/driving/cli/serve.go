package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/talentia-labs/talentia/internal/adapters/driving/httpapi"
	"github.com/talentia-labs/talentia/internal/auth"
	"github.com/talentia-labs/talentia/internal/config"
	"github.com/talentia-labs/talentia/internal/core/services"
)

const (
	taskQueueBuffer  = 32
	taskQueueWorkers = 2
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, task queue, and periodic scraper",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	log := a.logger

	// Hot reload keeps the scrape query list editable without a restart.
	// The watcher degrades to the loaded snapshot if the file cannot be
	// watched.
	queries := func() []string { return a.cfg.Scrape.Queries }
	watcher, err := config.Watch(cfgPath, a.cfg, log)
	if err != nil {
		log.Warn("config watch unavailable", zap.Error(err))
	} else {
		queries = watcher.Queries
		defer watcher.Close()
	}

	candidateSvc := services.NewCandidateService(a.extractor, a.embedder, a.candidates, log)
	ingestSvc := services.NewIngestService(a.sources(), a.embedder, a.jobs, a.cfg.Scrape.AllowMock, log)
	matchSvc := services.NewMatchService(a.candidates, a.jobs, log)
	repairSvc := services.NewRepairService(a.candidates, a.jobs, a.embedder, log)
	authSvc := auth.New(a.users, a.cfg.Auth.Secret,
		time.Duration(a.cfg.Auth.TokenTTLMinutes)*time.Minute)

	queue := services.NewTaskQueue(taskQueueBuffer, taskQueueWorkers, log)
	defer queue.Shutdown()

	scheduler := services.NewIngestScheduler(ingestSvc, queries,
		a.cfg.Scrape.Location, a.cfg.Scrape.PerQueryLimit,
		a.cfg.Scrape.IntervalHours, log)
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	defer scheduler.Stop()

	server := httpapi.New(httpapi.Options{
		Addr:          a.cfg.Server.Addr,
		AdminKey:      a.cfg.Server.AdminKey,
		Candidates:    candidateSvc,
		Matcher:       matchSvc,
		Repairer:      repairSvc,
		Ingestor:      ingestSvc,
		Jobs:          a.jobs,
		Auth:          authSvc,
		Tasks:         queue,
		Queries:       queries,
		Location:      a.cfg.Scrape.Location,
		PerQueryLimit: a.cfg.Scrape.PerQueryLimit,
		Logger:        log,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		return server.Shutdown(context.Background())
	}
}
