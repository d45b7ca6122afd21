package search

import (
	"context"

	"github.com/screenfind/screenfind/internal/domain"
	"github.com/screenfind/screenfind/internal/domain/record"
)

// RecordReader supplies the snapshot of records eligible for search.
// Implementations must return only records with a computed embedding.
type RecordReader interface {
	GetSearchable(ctx context.Context) ([]record.Record, error)
}

// Embedder vectorizes the query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
