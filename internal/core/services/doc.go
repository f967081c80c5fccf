// Package services implements the driving port interfaces.
// Services contain the core matching and ingestion logic and orchestrate
// calls to driven ports (extraction, embedding, job sources, storage).
package services
