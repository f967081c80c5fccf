package services

import (
	"context"
	"sync/atomic"

	"github.com/talentia-labs/talentia/internal/core/domain"
)

// fakeExtractor returns canned text or a canned error.
type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(ctx context.Context, raw *domain.RawDocument) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// fakeEmbedder returns a fixed vector, or fails after failAfter successful
// calls when failErr is set with failAfter >= 0.
type fakeEmbedder struct {
	vector    []float32
	failErr   error
	failAfter int32
	calls     int32
	pingErr   error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	n := atomic.AddInt32(&f.calls, 1)
	if f.failErr != nil && n > f.failAfter {
		return nil, f.failErr
	}
	return f.vector, nil
}

func (f *fakeEmbedder) Dimensions() int                 { return len(f.vector) }
func (f *fakeEmbedder) ModelName() string               { return "fake" }
func (f *fakeEmbedder) Ping(ctx context.Context) error  { return f.pingErr }
func (f *fakeEmbedder) Close() error                    { return nil }

// fakeSource returns canned postings per call, cycling through batches.
type fakeSource struct {
	name    string
	batches [][]domain.JobPosting
	call    int
	err     error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(ctx context.Context, query, location string, limit int) ([]domain.JobPosting, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.batches) == 0 {
		return nil, nil
	}
	batch := f.batches[f.call%len(f.batches)]
	f.call++
	return batch, nil
}
