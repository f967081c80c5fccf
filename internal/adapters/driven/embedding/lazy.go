// Package embedding wires embedding service adapters behind a lazily
// initialised process-wide singleton.
package embedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/talentia-labs/talentia/internal/core/domain"
	"github.com/talentia-labs/talentia/internal/core/ports/driven"
)

// Ensure Lazy implements the interface.
var _ driven.EmbeddingService = (*Lazy)(nil)

// Factory constructs the underlying embedding service. It is called at most
// once per successful initialisation; a returned error leaves the Lazy
// unconstructed so a later call can retry.
type Factory func(ctx context.Context) (driven.EmbeddingService, error)

// Lazy defers construction of an expensive embedding service to first use.
//
// Construction is guarded by a mutex: concurrent first callers block until
// one of them finishes constructing, and exactly one service instance ever
// exists. After construction the instance is shared read-only for the
// process lifetime. Construction or ping failure surfaces as
// domain.ErrModelUnavailable so callers can degrade to storing records
// without a vector.
type Lazy struct {
	factory Factory

	mu      sync.Mutex
	service driven.EmbeddingService
}

// NewLazy wraps a factory in a lazily-initialised singleton.
func NewLazy(factory Factory) *Lazy {
	return &Lazy{factory: factory}
}

// get returns the constructed service, building and pinging it on first use.
func (l *Lazy) get(ctx context.Context) (driven.EmbeddingService, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.service != nil {
		return l.service, nil
	}

	service, err := l.factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrModelUnavailable, err)
	}
	if err := service.Ping(ctx); err != nil {
		service.Close()
		return nil, fmt.Errorf("%w: %s", domain.ErrModelUnavailable, err)
	}

	l.service = service
	return service, nil
}

// Embed generates a vector embedding for the given text.
func (l *Lazy) Embed(ctx context.Context, text string) ([]float32, error) {
	service, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return service.Embed(ctx, text)
}

// Dimensions returns the embedding vector size, or zero before first use.
func (l *Lazy) Dimensions() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.service == nil {
		return 0
	}
	return l.service.Dimensions()
}

// ModelName returns the model name, or empty before first use.
func (l *Lazy) ModelName() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.service == nil {
		return ""
	}
	return l.service.ModelName()
}

// Ping forces initialisation and validates connectivity.
func (l *Lazy) Ping(ctx context.Context) error {
	_, err := l.get(ctx)
	return err
}

// Close releases the underlying service if it was ever constructed.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.service == nil {
		return nil
	}
	err := l.service.Close()
	l.service = nil
	return err
}
