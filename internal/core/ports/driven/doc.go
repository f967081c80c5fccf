// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Extractor: Turns raw document bytes into plain text
//   - JobSource: Fetches best-effort normalised postings from one provider
//   - CandidateStore, JobStore, UserStore: Persistence
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates vector embeddings. Without it, records are
//     stored vector-less and matching reports the missing vector explicitly.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, source, or normaliser package
package driven
