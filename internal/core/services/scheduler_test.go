package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingIngestor struct {
	calls chan []string
}

func (r *recordingIngestor) Ingest(ctx context.Context, queries []string, location string, perQueryLimit int) (int, error) {
	r.calls <- queries
	return len(queries), nil
}

func TestIngestScheduler_RunsImmediatelyOnStart(t *testing.T) {
	ingestor := &recordingIngestor{calls: make(chan []string, 1)}
	sched := NewIngestScheduler(
		ingestor,
		func() []string { return []string{"data scientist", "devops"} },
		"Morocco", 10, 6, zap.NewNop(),
	)

	require.NoError(t, sched.Start(context.Background()))
	defer sched.Stop()

	select {
	case queries := <-ingestor.calls:
		assert.Equal(t, []string{"data scientist", "devops"}, queries)
	case <-time.After(2 * time.Second):
		t.Fatal("no immediate ingestion cycle")
	}
}

func TestIngestScheduler_SkipsEmptyQueryList(t *testing.T) {
	ingestor := &recordingIngestor{calls: make(chan []string, 1)}
	sched := NewIngestScheduler(ingestor, func() []string { return nil }, "", 10, 6, zap.NewNop())

	require.NoError(t, sched.Start(context.Background()))
	defer sched.Stop()

	select {
	case <-ingestor.calls:
		t.Fatal("cycle ran despite empty query list")
	case <-time.After(200 * time.Millisecond):
	}
}
