package screenshot

import (
	"context"
	"testing"

	domrec "github.com/screenfind/screenfind/internal/domain/record"
)

// --- Mocks ---

type mockStore struct {
	hsetFunc         func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFunc      func(ctx context.Context, key string) (map[string]string, error)
	hgetAllMultiFunc func(ctx context.Context, keys []string) ([]map[string]string, error)
	delFunc          func(ctx context.Context, key string) error
	existsFunc       func(ctx context.Context, key string) (bool, error)
	scanFunc         func(ctx context.Context, pattern string) ([]string, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	return m.hsetFunc(ctx, key, fields)
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return m.hgetAllFunc(ctx, key)
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	return m.hgetAllMultiFunc(ctx, keys)
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	return m.delFunc(ctx, key)
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	return m.existsFunc(ctx, key)
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	return m.scanFunc(ctx, pattern)
}

// --- Helpers ---

func testRecord(t *testing.T, id string) domrec.Record {
	t.Helper()
	return domrec.Reconstruct(
		id,
		"mountain_sunset.jpg",
		"trail closed sign",
		"a mountain landscape at sunset",
		[]float32{0.5, -0.25, 1},
		"previews/"+id,
		1700000000,
	)
}
