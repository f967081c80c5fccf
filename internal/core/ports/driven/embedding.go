package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//
// The service behind this port is expensive to construct; production wiring
// goes through a lazily-initialised singleton so the model is materialised
// on first use and shared read-only afterwards. A failure to load or reach
// the model surfaces as domain.ErrModelUnavailable so callers can degrade
// to storing records without a vector.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	// Embedding identical text within one process yields identical vectors.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
