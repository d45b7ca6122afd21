package ingest

import (
	"context"

	"github.com/screenfind/screenfind/internal/domain"
	"github.com/screenfind/screenfind/internal/domain/job"
	"github.com/screenfind/screenfind/internal/domain/record"
)

// RecordWriter persists processed capture records.
type RecordWriter interface {
	Save(ctx context.Context, rec record.Record) error
}

// JobStore persists ingest job state.
type JobStore interface {
	Save(ctx context.Context, j job.Job) error
	Get(ctx context.Context, id string) (job.Job, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
