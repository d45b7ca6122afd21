package screenshot

import (
	"context"
	"fmt"
	"strings"

	"github.com/screenfind/screenfind/internal/domain"
	domrec "github.com/screenfind/screenfind/internal/domain/record"
)

// store is the consumer interface for capture records (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo stores capture records as hashes, one key per record.
type Repo struct {
	store store
}

// New creates a screenshot repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save writes a record, overwriting any previous version.
func (r *Repo) Save(ctx context.Context, rec domrec.Record) error {
	key := recordKey(rec.ID())
	if err := r.store.HSet(ctx, key, buildHashFields(rec)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Get returns a record by ID.
func (r *Repo) Get(ctx context.Context, id string) (domrec.Record, error) {
	key := recordKey(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domrec.Record{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return domrec.Record{}, domain.ErrNotFound
	}
	return parseHashFields(id, m), nil
}

// List returns all stored records.
func (r *Repo) List(ctx context.Context) ([]domrec.Record, error) {
	keys, err := r.store.Scan(ctx, recordKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi: %w", err)
	}

	recs := make([]domrec.Record, 0, len(keys))
	for i, m := range hashes {
		if len(m) == 0 {
			continue
		}
		recs = append(recs, parseHashFields(extractRecordID(keys[i]), m))
	}
	return recs, nil
}

// GetSearchable returns records that carry an embedding and can be ranked.
func (r *Repo) GetSearchable(ctx context.Context) ([]domrec.Record, error) {
	recs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	searchable := recs[:0]
	for _, rec := range recs {
		if rec.HasEmbedding() {
			searchable = append(searchable, rec)
		}
	}
	return searchable, nil
}

// Delete removes a record.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := recordKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func recordKey(id string) string {
	return fmt.Sprintf("%sshot:%s", domain.KeyPrefix, id)
}

func extractRecordID(key string) string {
	return strings.TrimPrefix(key, fmt.Sprintf("%sshot:", domain.KeyPrefix))
}
