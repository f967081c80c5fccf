package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/talentia-labs/talentia/internal/adapters/driven/embedding"
	"github.com/talentia-labs/talentia/internal/adapters/driven/embedding/ollama"
	"github.com/talentia-labs/talentia/internal/adapters/driven/embedding/openai"
	"github.com/talentia-labs/talentia/internal/adapters/driven/storage/memory"
	mongostore "github.com/talentia-labs/talentia/internal/adapters/driven/storage/mongo"
	"github.com/talentia-labs/talentia/internal/config"
	"github.com/talentia-labs/talentia/internal/core/ports/driven"
	"github.com/talentia-labs/talentia/internal/logger"
	"github.com/talentia-labs/talentia/internal/normalisers"
	"github.com/talentia-labs/talentia/internal/normalisers/docx"
	"github.com/talentia-labs/talentia/internal/normalisers/pdf"
	"github.com/talentia-labs/talentia/internal/sources/adzuna"
	"github.com/talentia-labs/talentia/internal/sources/jsearch"
	"github.com/talentia-labs/talentia/internal/sources/linkedin"
)

// memStores switches storage to the in-memory adapters, for local runs
// without a Mongo instance.
var memStores bool

// app bundles the wired dependency graph shared by the commands.
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	candidates driven.CandidateStore
	jobs       driven.JobStore
	users      driven.UserStore
	embedder   driven.EmbeddingService
	extractor  driven.Extractor

	closers []func(context.Context) error
}

// buildApp loads configuration and constructs storage, extraction, and the
// lazy embedding backend. Call close when done.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Logging.JSON, cfg.Logging.Debug)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	a := &app{cfg: cfg, logger: log}
	a.closers = append(a.closers, func(context.Context) error {
		_ = log.Sync()
		return nil
	})

	if err := a.buildStores(ctx); err != nil {
		a.close(ctx)
		return nil, err
	}

	registry := normalisers.NewRegistry(log)
	registry.Register(pdf.New(log))
	registry.Register(docx.New())
	a.extractor = registry

	lazy := embedding.NewLazy(embedderFactory(cfg.Embedding))
	a.embedder = lazy
	a.closers = append(a.closers, func(context.Context) error {
		return lazy.Close()
	})

	return a, nil
}

func (a *app) buildStores(ctx context.Context) error {
	if memStores {
		a.logger.Warn("using in-memory storage, nothing will persist")
		a.candidates = memory.NewCandidateStore()
		a.jobs = memory.NewJobStore()
		a.users = memory.NewUserStore()
		return nil
	}

	db, disconnect, err := mongostore.Connect(ctx, a.cfg.Mongo.URI, a.cfg.Mongo.Database)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	a.closers = append(a.closers, disconnect)

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	a.candidates = mongostore.NewCandidateStore(db)
	a.jobs = mongostore.NewJobStore(db)
	a.users = mongostore.NewUserStore(db)
	return nil
}

// sources builds the job source chain in its fixed invocation order.
// Providers without credentials still participate; they absorb their own
// failures and yield nothing.
func (a *app) sources() []driven.JobSource {
	out := []driven.JobSource{
		jsearch.New(jsearch.Config{APIKey: a.cfg.Sources.JSearch.APIKey}, a.logger),
		adzuna.New(adzuna.Config{
			AppID:   a.cfg.Sources.Adzuna.AppID,
			AppKey:  a.cfg.Sources.Adzuna.AppKey,
			Country: a.cfg.Sources.Adzuna.Country,
		}, a.logger),
	}
	if a.cfg.Sources.LinkedIn.Enabled {
		out = append(out, linkedin.New(linkedin.Config{
			Minimal: a.cfg.Sources.LinkedIn.Minimal,
		}, a.logger))
	}
	return out
}

func (a *app) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.logger.Warn("shutdown step failed", zap.Error(err))
		}
	}
}

// embedderFactory returns the constructor the lazy singleton defers to on
// first use.
func embedderFactory(cfg config.EmbeddingConfig) embedding.Factory {
	return func(_ context.Context) (driven.EmbeddingService, error) {
		switch cfg.Provider {
		case "openai":
			return openai.NewEmbeddingService(openai.Config{
				APIKey:  cfg.APIKey,
				BaseURL: cfg.BaseURL,
				Model:   cfg.Model,
			})
		default:
			return ollama.NewEmbeddingService(ollama.Config{
				BaseURL: cfg.BaseURL,
				Model:   cfg.Model,
			}), nil
		}
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&memStores, "memory", false,
		"use in-memory storage instead of MongoDB")
}
