package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/screenfind/screenfind/internal/domain"
	"github.com/screenfind/screenfind/internal/domain/record"
)

// --- Mocks ---

type mockRecords struct {
	recs   []record.Record
	err    error
	called bool
}

func (m *mockRecords) GetSearchable(_ context.Context) ([]record.Record, error) {
	m.called = true
	return m.recs, m.err
}

type mockEmbedder struct {
	vec    []float32
	err    error
	called bool
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.called = true
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

func naturePhoto(id string) record.Record {
	return record.Reconstruct(id, "mountain_sunset.jpg", "",
		"a beautiful mountain landscape at sunset",
		[]float32{1, 0, 0}, "previews/"+id, 0)
}

func testCorpus() []record.Record {
	return []record.Record{
		naturePhoto("best"),
		record.Reconstruct("weak", "IMG_1.jpg", "", "a mountain",
			[]float32{0, 1, 0}, "", 0),
		record.Reconstruct("unrelated", "doc.png", "", "a spreadsheet with numbers",
			[]float32{0, 1, 0}, "", 0),
	}
}

func newTestService(recs []record.Record) (*Service, *mockRecords, *mockEmbedder) {
	records := &mockRecords{recs: recs}
	embed := &mockEmbedder{vec: []float32{1, 0, 0}}
	return New(records, embed), records, embed
}

// --- Tests ---

func TestSearch_RanksAndFilters(t *testing.T) {
	svc, _, _ := newTestService(testCorpus())

	results, scanned, err := svc.Search(context.Background(), "show mountain pictures", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scanned != 3 {
		t.Errorf("scanned = %d, want 3", scanned)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results (unrelated filtered out), got %d", len(results))
	}
	if results[0].ID() != "best" || results[1].ID() != "weak" {
		t.Errorf("order = [%s, %s], want [best, weak]", results[0].ID(), results[1].ID())
	}
	if results[0].ConfidenceScore() <= results[1].ConfidenceScore() {
		t.Error("results are not sorted by confidence descending")
	}
	if results[0].PreviewRef() != "previews/best" {
		t.Errorf("PreviewRef = %q", results[0].PreviewRef())
	}
}

func TestSearch_ConfidenceBoundsAndPrecision(t *testing.T) {
	svc, _, _ := newTestService(testCorpus())

	results, _, err := svc.Search(context.Background(), "show mountain pictures", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range results {
		c := r.ConfidenceScore()
		if c < 0 || c > 100 {
			t.Errorf("confidence %f out of [0, 100]", c)
		}
		if math.Abs(c*10-math.Round(c*10)) > 1e-9 {
			t.Errorf("confidence %f not rounded to one decimal", c)
		}
	}
}

func TestSearch_MatchedElementsBounds(t *testing.T) {
	svc, _, _ := newTestService(testCorpus())

	results, _, err := svc.Search(context.Background(), "show mountain pictures", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range results {
		n := len(r.MatchedElements())
		if n < 1 || n > 5 {
			t.Errorf("result %s has %d matched elements, want 1..5", r.ID(), n)
		}
	}
}

func TestSearch_EmptyCorpus(t *testing.T) {
	svc, _, _ := newTestService(nil)

	results, scanned, err := svc.Search(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 || scanned != 0 {
		t.Errorf("results=%d scanned=%d, want 0/0", len(results), scanned)
	}
}

func TestSearch_GenericFilenameFloor(t *testing.T) {
	// A throwaway filename with no text content has almost nothing to score on;
	// only base similarity could lift it over the cutoff.
	recs := []record.Record{
		record.Reconstruct("floor", "download.jpg", "", "", []float32{0, 1, 0}, "", 0),
	}
	svc, _, _ := newTestService(recs)

	results, scanned, err := svc.Search(context.Background(), "show mountain pictures", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scanned != 1 {
		t.Errorf("scanned = %d, want 1", scanned)
	}
	if len(results) != 0 {
		t.Errorf("len = %d, want 0 (below the visual cutoff)", len(results))
	}
}

func TestSearch_ZeroLimit(t *testing.T) {
	svc, records, embed := newTestService(testCorpus())

	results, scanned, err := svc.Search(context.Background(), "mountain", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 || scanned != 0 {
		t.Errorf("results=%d scanned=%d, want 0/0", len(results), scanned)
	}
	if records.called || embed.called {
		t.Error("zero limit must not touch storage or the embedder")
	}
}

func TestSearch_NegativeLimitUsesDefault(t *testing.T) {
	recs := make([]record.Record, 0, 8)
	for i := 0; i < 8; i++ {
		recs = append(recs, naturePhoto(fmt.Sprintf("rec-%d", i)))
	}
	svc, _, _ := newTestService(recs)

	results, _, err := svc.Search(context.Background(), "mountain", -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != DefaultLimit {
		t.Errorf("len = %d, want %d", len(results), DefaultLimit)
	}
}

func TestSearch_LimitCappedAtMax(t *testing.T) {
	recs := make([]record.Record, 0, 10)
	for i := 0; i < 10; i++ {
		recs = append(recs, naturePhoto(fmt.Sprintf("rec-%d", i)))
	}
	svc, _, _ := newTestService(recs)
	svc.WithLimits(5, 8)

	results, _, err := svc.Search(context.Background(), "mountain", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 8 {
		t.Errorf("len = %d, want max limit 8", len(results))
	}
}

func TestSearch_EmptyQuerySkipsEmbedder(t *testing.T) {
	svc, _, embed := newTestService(testCorpus())

	results, scanned, err := svc.Search(context.Background(), "   ", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embed.called {
		t.Error("whitespace query must not call the embedder")
	}
	if scanned != 3 {
		t.Errorf("scanned = %d, want 3", scanned)
	}
	// Neutral content score on a generic intent keeps everything above the
	// generic cutoff.
	if len(results) != 3 {
		t.Errorf("len = %d, want 3", len(results))
	}
}

func TestSearch_EmbedderErrorPropagates(t *testing.T) {
	records := &mockRecords{recs: testCorpus()}
	embed := &mockEmbedder{err: domain.ErrEmbeddingProviderError}
	svc := New(records, embed)

	_, _, err := svc.Search(context.Background(), "mountain", 10)
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Errorf("err = %v, want ErrEmbeddingProviderError", err)
	}
	if records.called {
		t.Error("records must not be loaded when the query embedding fails")
	}
}

func TestSearch_RecordsErrorPropagates(t *testing.T) {
	records := &mockRecords{err: errors.New("boom")}
	embed := &mockEmbedder{vec: []float32{1, 0, 0}}
	svc := New(records, embed)

	_, _, err := svc.Search(context.Background(), "mountain", 10)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestSearch_SkipsRecordsWithoutEmbedding(t *testing.T) {
	recs := []record.Record{
		naturePhoto("embedded"),
		record.Reconstruct("pending", "mountain_view.jpg", "",
			"a mountain view", nil, "", 0),
	}
	svc, _, _ := newTestService(recs)

	results, scanned, err := svc.Search(context.Background(), "mountain", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scanned != 1 {
		t.Errorf("scanned = %d, want 1", scanned)
	}
	for _, r := range results {
		if r.ID() == "pending" {
			t.Error("record without embedding must not be returned")
		}
	}
}

func TestSearch_Deterministic(t *testing.T) {
	svc, _, _ := newTestService(testCorpus())

	a, _, err := svc.Search(context.Background(), "show mountain pictures", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _, err := svc.Search(context.Background(), "show mountain pictures", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("result counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID() != b[i].ID() || a[i].ConfidenceScore() != b[i].ConfidenceScore() {
			t.Errorf("result %d differs between identical searches", i)
		}
	}
}
