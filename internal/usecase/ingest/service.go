package ingest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/screenfind/screenfind/internal/domain"
	"github.com/screenfind/screenfind/internal/domain/job"
	"github.com/screenfind/screenfind/internal/domain/record"
)

// MaxBatchSize is the maximum number of captures per ingest request.
const MaxBatchSize = 50

// DefaultWorkers is the embedding concurrency used when none is configured.
const DefaultWorkers = 4

// Item is one capture submitted for ingestion.
type Item struct {
	Filename          string
	RecognizedText    string
	VisualDescription string
	PreviewRef        string
}

// Service accepts capture batches, embeds them in the background, and tracks
// per-job progress.
type Service struct {
	records RecordWriter
	jobs    JobStore
	embed   Embedder
	logger  *zap.Logger

	workers      int
	maxBatchSize int

	wg sync.WaitGroup
}

// New creates an ingest service.
func New(records RecordWriter, jobs JobStore, embed Embedder, logger *zap.Logger) *Service {
	return &Service{
		records:      records,
		jobs:         jobs,
		embed:        embed,
		logger:       logger,
		workers:      DefaultWorkers,
		maxBatchSize: MaxBatchSize,
	}
}

// WithWorkers configures the embedding concurrency.
func (s *Service) WithWorkers(n int) *Service {
	if n > 0 {
		s.workers = n
	}
	return s
}

// WithMaxBatchSize configures the maximum batch size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// Submit registers a batch for processing and returns the tracking job.
// Processing continues in the background after the request ends; callers poll
// Status with the returned job ID.
func (s *Service) Submit(ctx context.Context, items []Item) (job.Job, error) {
	if len(items) == 0 {
		return job.Job{}, fmt.Errorf("empty batch: %w", domain.ErrInvalidInput)
	}
	if len(items) > s.maxBatchSize {
		return job.Job{}, fmt.Errorf("batch size %d exceeds %d: %w", len(items), s.maxBatchSize, domain.ErrInvalidInput)
	}
	for i := range items {
		if strings.TrimSpace(items[i].Filename) == "" {
			return job.Job{}, fmt.Errorf("item %d: filename is required: %w", i, domain.ErrInvalidInput)
		}
	}

	j, err := job.New(uuid.NewString(), len(items))
	if err != nil {
		return job.Job{}, fmt.Errorf("create job: %w", err)
	}
	if err := s.jobs.Save(ctx, j); err != nil {
		return job.Job{}, fmt.Errorf("save job: %w", err)
	}

	s.wg.Add(1)
	go s.process(context.WithoutCancel(ctx), j, items)

	return j, nil
}

// Status returns the current state of an ingest job.
func (s *Service) Status(ctx context.Context, id string) (job.Job, error) {
	j, err := s.jobs.Get(ctx, id)
	if err != nil {
		return job.Job{}, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

// Wait blocks until all background processing has finished. Used during
// shutdown and in tests.
func (s *Service) Wait() {
	s.wg.Wait()
}

// process embeds and stores every item of a batch, advancing the job after
// each one. Item failures are counted, not fatal; the job always completes.
func (s *Service) process(ctx context.Context, j job.Job, items []Item) {
	defer s.wg.Done()

	var (
		mu        sync.Mutex
		processed int
		failed    int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := range items {
		item := items[i]
		g.Go(func() error {
			err := s.ingestOne(gctx, item)

			mu.Lock()
			if err != nil {
				failed++
				s.logger.Warn("Ingest item failed",
					zap.String("job_id", j.ID()),
					zap.String("filename", item.Filename),
					zap.Error(err),
				)
			} else {
				processed++
			}
			j = j.WithProgress(processed+failed, processed, failed)
			snapshot := j
			mu.Unlock()

			if err := s.jobs.Save(gctx, snapshot); err != nil {
				s.logger.Warn("Ingest progress save failed",
					zap.String("job_id", snapshot.ID()), zap.Error(err))
			}
			return nil
		})
	}

	_ = g.Wait()

	done := j.Completed()
	if err := s.jobs.Save(ctx, done); err != nil {
		s.logger.Error("Ingest job completion save failed",
			zap.String("job_id", done.ID()), zap.Error(err))
		return
	}

	s.logger.Info("Ingest job completed",
		zap.String("job_id", done.ID()),
		zap.Int("total", done.Total()),
		zap.Int("processed", done.Processed()),
		zap.Int("failed", done.Failed()),
	)
}

// ingestOne embeds the combined capture text and stores the record.
func (s *Service) ingestOne(ctx context.Context, item Item) error {
	rec, err := record.New(
		uuid.NewString(),
		item.Filename,
		item.RecognizedText,
		item.VisualDescription,
		item.PreviewRef,
	)
	if err != nil {
		return fmt.Errorf("build record: %w", err)
	}

	text := strings.TrimSpace(item.RecognizedText + " " + item.VisualDescription)
	embResult, err := s.embed.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("vectorize: %w", err)
	}
	rec = rec.WithEmbedding(embResult.Embedding)

	if err := s.records.Save(ctx, rec); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}
