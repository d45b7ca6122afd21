package screenshot

import (
	"context"

	"github.com/screenfind/screenfind/internal/domain/record"
)

// RecordReader lists stored capture records.
type RecordReader interface {
	List(ctx context.Context) ([]record.Record, error)
	Get(ctx context.Context, id string) (record.Record, error)
}

// RecordDeleter removes a capture record from storage.
type RecordDeleter interface {
	Delete(ctx context.Context, id string) error
}
