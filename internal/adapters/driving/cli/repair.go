package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/talentia-labs/talentia/internal/core/services"
)

var repairBatch int

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Backfill missing embedding vectors",
	Long: `Scan stored candidates and postings without an embedding vector and
generate one for each. The embedding model is a hard dependency here: if it
cannot be reached the run fails instead of producing an empty report.`,
	RunE: runRepair,
}

func init() {
	repairCmd.Flags().IntVar(&repairBatch, "batch", 0,
		"records per collection to process (0 uses the default)")
	rootCmd.AddCommand(repairCmd)
}

func runRepair(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	svc := services.NewRepairService(a.candidates, a.jobs, a.embedder, a.logger)

	report, err := svc.Repair(ctx, repairBatch)
	if err != nil {
		return err
	}

	cmd.Printf("candidates updated: %d\n", report.CandidatesUpdated)
	cmd.Printf("jobs updated:       %d\n", report.JobsUpdated)
	for _, failure := range report.Failures {
		cmd.Printf("failed: %s\n", failure)
	}
	return nil
}
