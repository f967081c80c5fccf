package driving

import "context"

// Ingestor aggregates postings from all configured job sources.
type Ingestor interface {
	// Ingest fetches postings for each query term, deduplicates, embeds, and
	// reconciles them against the store. It returns the number of newly
	// stored postings. Source failures and per-record reconciliation
	// failures are absorbed and logged; they never abort the batch.
	Ingest(ctx context.Context, queries []string, location string, perQueryLimit int) (int, error)
}

// Repairer backfills missing embedding vectors.
type Repairer interface {
	// Repair scans candidates and postings missing vectors and attempts to
	// backfill them in one bounded batch per collection. Individual failures
	// are recorded in the report, not raised.
	Repair(ctx context.Context, batchSize int) (*RepairReport, error)
}

// RepairReport summarises one repair run.
type RepairReport struct {
	// CandidatesUpdated is the number of candidate vectors backfilled.
	CandidatesUpdated int

	// JobsUpdated is the number of posting vectors backfilled.
	JobsUpdated int

	// Failures lists per-record failures as "id: reason".
	Failures []string
}
