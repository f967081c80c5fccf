// Package sources contains job-source adapters and the shared helpers they
// build on.
//
// Each adapter normalises one external job provider into domain.JobPosting
// records. Adapters never propagate upstream failure to the caller: network
// errors, malformed responses, and anti-bot rejections are logged and yield
// an empty result so one broken provider cannot stall an ingestion run.
// Field extraction tries an ordered list of strategies per
// field and taking the first non-empty value.
package sources
