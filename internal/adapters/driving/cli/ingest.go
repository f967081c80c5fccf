package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/talentia-labs/talentia/internal/core/services"
)

var (
	ingestQueries  []string
	ingestLocation string
	ingestLimit    int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run one ingestion cycle and exit",
	Long: `Fetch postings from every configured source for each query term,
deduplicate them, embed what the model will accept, and store the rest for
a later repair run.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringSliceVar(&ingestQueries, "query", nil,
		"query terms (defaults to the configured scrape list)")
	ingestCmd.Flags().StringVar(&ingestLocation, "location", "",
		"location filter (defaults to the configured one)")
	ingestCmd.Flags().IntVar(&ingestLimit, "limit", 0,
		"per-query posting limit (defaults to the configured one)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	queries := ingestQueries
	if len(queries) == 0 {
		queries = a.cfg.Scrape.Queries
	}
	location := ingestLocation
	if location == "" {
		location = a.cfg.Scrape.Location
	}
	limit := ingestLimit
	if limit <= 0 {
		limit = a.cfg.Scrape.PerQueryLimit
	}

	svc := services.NewIngestService(a.sources(), a.embedder, a.jobs,
		a.cfg.Scrape.AllowMock, a.logger)

	inserted, err := svc.Ingest(ctx, queries, location, limit)
	if err != nil {
		return err
	}
	a.logger.Info("ingestion finished", zap.Int("inserted", inserted))
	cmd.Printf("inserted %d postings\n", inserted)
	return nil
}
