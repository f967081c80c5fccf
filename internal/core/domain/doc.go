// Package domain defines the core business entities for Talentia.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Candidate: An uploaded CV with extracted text and optional embedding
//   - JobPosting: A normalised job offer from an external source
//   - MatchResult: A scored candidate-to-posting pairing (derived, never stored)
//   - RawDocument: Opaque uploaded bytes plus a declared extension
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
