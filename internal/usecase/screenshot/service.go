package screenshot

import (
	"context"
	"fmt"
	"sort"

	"github.com/screenfind/screenfind/internal/domain"
	"github.com/screenfind/screenfind/internal/domain/record"
)

// Service manages stored capture records.
type Service struct {
	reader  RecordReader
	deleter RecordDeleter
}

// New creates a screenshot management service.
func New(reader RecordReader, deleter RecordDeleter) *Service {
	return &Service{reader: reader, deleter: deleter}
}

// List returns all stored records, newest first.
func (s *Service) List(ctx context.Context) ([]record.Record, error) {
	recs, err := s.reader.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].CreatedAt() > recs[j].CreatedAt()
	})
	return recs, nil
}

// Delete removes a record by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("record id is required: %w", domain.ErrInvalidInput)
	}
	if err := s.deleter.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}
