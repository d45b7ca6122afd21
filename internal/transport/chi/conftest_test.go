package chi

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	chiv5 "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/screenfind/screenfind/internal/domain"
	domjob "github.com/screenfind/screenfind/internal/domain/job"
	"github.com/screenfind/screenfind/internal/domain/record"
	healthuc "github.com/screenfind/screenfind/internal/usecase/health"
	ingestuc "github.com/screenfind/screenfind/internal/usecase/ingest"
	screenshotuc "github.com/screenfind/screenfind/internal/usecase/screenshot"
	searchuc "github.com/screenfind/screenfind/internal/usecase/search"
)

var errTest = errors.New("component failure")

// --- Mocks ---

// stubRecords is an in-memory record store shared by the ingest, screenshot,
// and search services under test.
type stubRecords struct {
	mu   sync.Mutex
	recs map[string]record.Record
}

func newStubRecords(recs ...record.Record) *stubRecords {
	s := &stubRecords{recs: make(map[string]record.Record)}
	for _, r := range recs {
		s.recs[r.ID()] = r
	}
	return s
}

func (s *stubRecords) Save(_ context.Context, rec record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[rec.ID()] = rec
	return nil
}

func (s *stubRecords) Get(_ context.Context, id string) (record.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[id]
	if !ok {
		return record.Record{}, domain.ErrNotFound
	}
	return rec, nil
}

func (s *stubRecords) List(_ context.Context) ([]record.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := make([]record.Record, 0, len(s.recs))
	for _, r := range s.recs {
		recs = append(recs, r)
	}
	return recs, nil
}

func (s *stubRecords) GetSearchable(ctx context.Context) ([]record.Record, error) {
	recs, _ := s.List(ctx)
	searchable := make([]record.Record, 0, len(recs))
	for _, r := range recs {
		if r.HasEmbedding() {
			searchable = append(searchable, r)
		}
	}
	return searchable, nil
}

func (s *stubRecords) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.recs, id)
	return nil
}

type stubJobs struct {
	mu   sync.Mutex
	jobs map[string]domjob.Job
}

func newStubJobs() *stubJobs {
	return &stubJobs{jobs: make(map[string]domjob.Job)}
}

func (s *stubJobs) Save(_ context.Context, j domjob.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[j.ID()] = j
	return nil
}

func (s *stubJobs) Get(_ context.Context, id string) (domjob.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return domjob.Job{}, domain.ErrJobNotFound
	}
	return j, nil
}

type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{Embedding: []float32{1, 0, 0}}, nil
}

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(_ context.Context) error { return s.err }

// --- Helpers ---

type testEnv struct {
	router  chiv5.Router
	records *stubRecords
	ingest  *ingestuc.Service
	pinger  *stubPinger
}

func newTestEnv(t *testing.T, recs ...record.Record) *testEnv {
	t.Helper()

	records := newStubRecords(recs...)
	jobs := newStubJobs()
	pinger := &stubPinger{}

	ingestSvc := ingestuc.New(records, jobs, stubEmbedder{}, zap.NewNop())
	searchSvc := searchuc.New(records, stubEmbedder{})
	screenshotSvc := screenshotuc.New(records, records)
	healthSvc := healthuc.New(pinger, nil)

	srv := NewServer(ingestSvc, screenshotSvc, searchSvc, healthSvc, zap.NewNop())
	r := chiv5.NewRouter()
	srv.Routes(r)

	return &testEnv{router: r, records: records, ingest: ingestSvc, pinger: pinger}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}
