package job

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/screenfind/screenfind/internal/domain"
	domjob "github.com/screenfind/screenfind/internal/domain/job"
)

// DefaultTTL bounds how long finished job state lingers in storage.
const DefaultTTL = 48 * time.Hour

// store is the consumer interface for job state (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Repo stores ingest job progress as hashes with a TTL.
type Repo struct {
	store store
	ttl   time.Duration
}

// New creates a job repository.
func New(s store) *Repo {
	return &Repo{store: s, ttl: DefaultTTL}
}

// WithTTL configures how long job state is retained.
func (r *Repo) WithTTL(ttl time.Duration) *Repo {
	if ttl > 0 {
		r.ttl = ttl
	}
	return r
}

// Save writes the current job state and refreshes its TTL.
func (r *Repo) Save(ctx context.Context, j domjob.Job) error {
	key := jobKey(j.ID())
	fields := map[string]string{
		"status":    string(j.Status()),
		"progress":  strconv.Itoa(j.Progress()),
		"total":     strconv.Itoa(j.Total()),
		"processed": strconv.Itoa(j.Processed()),
		"failed":    strconv.Itoa(j.Failed()),
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	if err := r.store.Expire(ctx, key, r.ttl, false); err != nil {
		return fmt.Errorf("expire %s: %w", key, err)
	}
	return nil
}

// Get returns a job by ID.
func (r *Repo) Get(ctx context.Context, id string) (domjob.Job, error) {
	key := jobKey(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domjob.Job{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return domjob.Job{}, domain.ErrJobNotFound
	}

	progress, _ := strconv.Atoi(m["progress"])
	total, _ := strconv.Atoi(m["total"])
	processed, _ := strconv.Atoi(m["processed"])
	failed, _ := strconv.Atoi(m["failed"])

	return domjob.Reconstruct(id, domjob.Status(m["status"]), progress, total, processed, failed), nil
}

func jobKey(id string) string {
	return fmt.Sprintf("%sjob:%s", domain.KeyPrefix, id)
}
