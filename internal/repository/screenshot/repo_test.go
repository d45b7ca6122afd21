package screenshot

import (
	"context"
	"errors"
	"testing"

	"github.com/screenfind/screenfind/internal/domain"
)

func TestSave(t *testing.T) {
	var gotKey string
	var gotFields map[string]string
	store := &mockStore{
		hsetFunc: func(_ context.Context, key string, fields map[string]string) error {
			gotKey = key
			gotFields = fields
			return nil
		},
	}
	repo := New(store)

	rec := testRecord(t, "rec-1")
	if err := repo.Save(context.Background(), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotKey != domain.KeyPrefix+"shot:rec-1" {
		t.Errorf("key = %q", gotKey)
	}
	if gotFields["filename"] != "mountain_sunset.jpg" {
		t.Errorf("filename = %q", gotFields["filename"])
	}
	if gotFields["recognized_text"] != "trail closed sign" {
		t.Errorf("recognized_text = %q", gotFields["recognized_text"])
	}
	if gotFields["visual_description"] != "a mountain landscape at sunset" {
		t.Errorf("visual_description = %q", gotFields["visual_description"])
	}
	if gotFields["preview_ref"] != "previews/rec-1" {
		t.Errorf("preview_ref = %q", gotFields["preview_ref"])
	}
	if gotFields["created_at"] != "1700000000" {
		t.Errorf("created_at = %q", gotFields["created_at"])
	}
	if len(gotFields["embedding"]) != 3*4 {
		t.Errorf("embedding payload is %d bytes, want 12", len(gotFields["embedding"]))
	}
}

func TestSave_NoEmbeddingField(t *testing.T) {
	var gotFields map[string]string
	store := &mockStore{
		hsetFunc: func(_ context.Context, _ string, fields map[string]string) error {
			gotFields = fields
			return nil
		},
	}
	repo := New(store)

	rec := testRecord(t, "rec-1").WithEmbedding(nil)
	if err := repo.Save(context.Background(), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := gotFields["embedding"]; ok {
		t.Error("embedding field must be omitted for records without a vector")
	}
}

func TestGet_RoundTrip(t *testing.T) {
	want := testRecord(t, "rec-1")
	fields := buildHashFields(want)
	store := &mockStore{
		hgetAllFunc: func(_ context.Context, key string) (map[string]string, error) {
			if key != domain.KeyPrefix+"shot:rec-1" {
				t.Errorf("key = %q", key)
			}
			return fields, nil
		},
	}
	repo := New(store)

	got, err := repo.Get(context.Background(), "rec-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID() != want.ID() ||
		got.Filename() != want.Filename() ||
		got.RecognizedText() != want.RecognizedText() ||
		got.VisualDescription() != want.VisualDescription() ||
		got.PreviewRef() != want.PreviewRef() ||
		got.CreatedAt() != want.CreatedAt() {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	gotVec, wantVec := got.Embedding(), want.Embedding()
	if len(gotVec) != len(wantVec) {
		t.Fatalf("embedding len = %d, want %d", len(gotVec), len(wantVec))
	}
	for i := range wantVec {
		if gotVec[i] != wantVec[i] {
			t.Errorf("embedding[%d] = %f, want %f", i, gotVec[i], wantVec[i])
		}
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
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestList(t *testing.T) {
	a := testRecord(t, "a")
	b := testRecord(t, "b")
	store := &mockStore{
		scanFunc: func(_ context.Context, pattern string) ([]string, error) {
			if pattern != domain.KeyPrefix+"shot:*" {
				t.Errorf("pattern = %q", pattern)
			}
			return []string{
				domain.KeyPrefix + "shot:a",
				domain.KeyPrefix + "shot:gone",
				domain.KeyPrefix + "shot:b",
			}, nil
		},
		hgetAllMultiFunc: func(_ context.Context, keys []string) ([]map[string]string, error) {
			if len(keys) != 3 {
				t.Errorf("keys = %v", keys)
			}
			// "gone" expired between SCAN and HGETALL.
			return []map[string]string{buildHashFields(a), {}, buildHashFields(b)}, nil
		},
	}
	repo := New(store)

	recs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	if recs[0].ID() != "a" || recs[1].ID() != "b" {
		t.Errorf("ids = [%s, %s], want [a, b]", recs[0].ID(), recs[1].ID())
	}
}

func TestList_Empty(t *testing.T) {
	store := &mockStore{
		scanFunc: func(_ context.Context, _ string) ([]string, error) {
			return nil, nil
		},
	}
	repo := New(store)

	recs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("len = %d, want 0", len(recs))
	}
}

func TestGetSearchable_FiltersUnembedded(t *testing.T) {
	embedded := testRecord(t, "embedded")
	pending := testRecord(t, "pending").WithEmbedding(nil)
	store := &mockStore{
		scanFunc: func(_ context.Context, _ string) ([]string, error) {
			return []string{
				domain.KeyPrefix + "shot:embedded",
				domain.KeyPrefix + "shot:pending",
			}, nil
		},
		hgetAllMultiFunc: func(_ context.Context, _ []string) ([]map[string]string, error) {
			return []map[string]string{buildHashFields(embedded), buildHashFields(pending)}, nil
		},
	}
	repo := New(store)

	recs, err := repo.GetSearchable(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 || recs[0].ID() != "embedded" {
		t.Errorf("recs = %v", recs)
	}
}

func TestDelete(t *testing.T) {
	var delKey string
	store := &mockStore{
		existsFunc: func(_ context.Context, _ string) (bool, error) { return true, nil },
		delFunc: func(_ context.Context, key string) error {
			delKey = key
			return nil
		},
	}
	repo := New(store)

	if err := repo.Delete(context.Background(), "rec-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delKey != domain.KeyPrefix+"shot:rec-1" {
		t.Errorf("key = %q", delKey)
	}
}

func TestDelete_NotFound(t *testing.T) {
	store := &mockStore{
		existsFunc: func(_ context.Context, _ string) (bool, error) { return false, nil },
		delFunc: func(_ context.Context, _ string) error {
			t.Error("Del must not be called for a missing record")
			return nil
		},
	}
	repo := New(store)

	err := repo.Delete(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestVectorRoundTrip(t *testing.T) {
	want := []float32{0, 1, -1, 0.5, 3.1415927}
	got := bytesToVector(vectorToBytes(want))
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("v[%d] = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestBytesToVector_Malformed(t *testing.T) {
	if v := bytesToVector("abc"); v != nil {
		t.Errorf("v = %v, want nil for truncated payload", v)
	}
}
