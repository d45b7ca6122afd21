package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/screenfind/screenfind/internal/domain"
	domjob "github.com/screenfind/screenfind/internal/domain/job"
)

// --- Mocks ---

type mockStore struct {
	hsetFunc    func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFunc func(ctx context.Context, key string) (map[string]string, error)
	expireFunc  func(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	return m.hsetFunc(ctx, key, fields)
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return m.hgetAllFunc(ctx, key)
}

func (m *mockStore) Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error {
	return m.expireFunc(ctx, key, ttl, nx)
}

// --- Tests ---

func TestSave(t *testing.T) {
	var gotKey string
	var gotFields map[string]string
	var gotTTL time.Duration
	store := &mockStore{
		hsetFunc: func(_ context.Context, key string, fields map[string]string) error {
			gotKey = key
			gotFields = fields
			return nil
		},
		expireFunc: func(_ context.Context, key string, ttl time.Duration, nx bool) error {
			if key != gotKey {
				t.Errorf("expire key = %q, want %q", key, gotKey)
			}
			if nx {
				t.Error("expire must refresh the TTL on every save")
			}
			gotTTL = ttl
			return nil
		},
	}
	repo := New(store).WithTTL(2 * time.Hour)

	j, err := domjob.New("job-1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	j = j.WithProgress(4, 3, 1)

	if err := repo.Save(context.Background(), j); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotKey != domain.KeyPrefix+"job:job-1" {
		t.Errorf("key = %q", gotKey)
	}
	want := map[string]string{
		"status":    "processing",
		"progress":  "4",
		"total":     "10",
		"processed": "3",
		"failed":    "1",
	}
	for k, v := range want {
		if gotFields[k] != v {
			t.Errorf("field %s = %q, want %q", k, gotFields[k], v)
		}
	}
	if gotTTL != 2*time.Hour {
		t.Errorf("ttl = %v, want 2h", gotTTL)
	}
}

func TestGet_RoundTrip(t *testing.T) {
	store := &mockStore{
		hgetAllFunc: func(_ context.Context, key string) (map[string]string, error) {
			if key != domain.KeyPrefix+"job:job-1" {
				t.Errorf("key = %q", key)
			}
			return map[string]string{
				"status":    "completed",
				"progress":  "10",
				"total":     "10",
				"processed": "8",
				"failed":    "2",
			}, nil
		},
	}
	repo := New(store)

	j, err := repo.Get(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if j.ID() != "job-1" || j.Status() != domjob.StatusCompleted {
		t.Errorf("id=%s status=%s", j.ID(), j.Status())
	}
	if j.Progress() != 10 || j.Total() != 10 || j.Processed() != 8 || j.Failed() != 2 {
		t.Errorf("counters = %d/%d/%d/%d", j.Progress(), j.Total(), j.Processed(), j.Failed())
	}
}

func TestGet_NotFound(t *testing.T) {
	store := &mockStore{
		hgetAllFunc: func(_ context.Context, _ string) (map[string]string, error) {
			return map[string]string{}, nil
		},
	}
	repo := New(store)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("err = %v, want ErrJobNotFound", err)
	}
}

func TestSave_StoreError(t *testing.T) {
	store := &mockStore{
		hsetFunc: func(_ context.Context, _ string, _ map[string]string) error {
			return errors.New("write failed")
		},
	}
	repo := New(store)

	j, _ := domjob.New("job-1", 1)
	if err := repo.Save(context.Background(), j); err == nil {
		t.Fatal("expected error")
	}
}
