package search

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/screenfind/screenfind/internal/domain/record"
	"github.com/screenfind/screenfind/internal/domain/search/content"
	"github.com/screenfind/screenfind/internal/domain/search/intent"
	"github.com/screenfind/screenfind/internal/domain/search/result"
)

// DefaultLimit is used when the caller passes a negative limit.
const DefaultLimit = 5

// MaxLimit caps how many results a single request may ask for.
const MaxLimit = 50

// Service ranks the screenshot corpus against natural-language queries.
// Each Search call is a pure computation over the snapshot it loads; the
// service holds no cross-call state and is safe for concurrent use.
type Service struct {
	records RecordReader
	embed   Embedder

	defaultLimit int
	maxLimit     int
}

// New creates a search service.
func New(records RecordReader, embed Embedder) *Service {
	return &Service{
		records:      records,
		embed:        embed,
		defaultLimit: DefaultLimit,
		maxLimit:     MaxLimit,
	}
}

// WithLimits configures the default and maximum result counts.
func (s *Service) WithLimits(defaultLimit, maxLimit int) *Service {
	if defaultLimit > 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// Search classifies the query, scores every searchable record, filters by
// the intent-specific threshold, and returns up to limit results sorted by
// score descending (ties keep snapshot order). The second return value is
// the number of records scanned.
//
// A limit of zero returns no results; a negative limit means DefaultLimit.
// An empty query is valid: keyword signals stay empty and the base
// similarity is zero for every record.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]result.Result, int, error) {
	if limit == 0 {
		return []result.Result{}, 0, nil
	}
	if limit < 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	q := intent.Classify(query)

	// Whitespace-only queries skip the provider: there is nothing meaningful
	// to embed, and a zero vector scores 0 against everything.
	var queryVec []float32
	if strings.TrimSpace(query) != "" {
		embRes, err := s.embed.Embed(ctx, query)
		if err != nil {
			return nil, 0, fmt.Errorf("vectorize query: %w", err)
		}
		queryVec = embRes.Embedding
	}

	records, err := s.records.GetSearchable(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("load searchable records: %w", err)
	}

	type scored struct {
		rec       record.Record
		desc      content.Descriptor
		breakdown Breakdown
	}

	kept := make([]scored, 0, len(records))
	scanned := 0
	for _, rec := range records {
		if !rec.HasEmbedding() {
			continue
		}
		scanned++

		cd := content.Classify(rec.RecognizedText(), rec.VisualDescription(), rec.Filename())
		b := Score(q, rec, cd, queryVec)
		if !PassesThreshold(q, cd, rec, b.Final) {
			continue
		}
		kept = append(kept, scored{rec: rec, desc: cd, breakdown: b})
	}

	// Stable: equal scores keep snapshot iteration order for deterministic output.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].breakdown.Final > kept[j].breakdown.Final
	})
	if len(kept) > limit {
		kept = kept[:limit]
	}

	results := make([]result.Result, 0, len(kept))
	for _, k := range kept {
		results = append(results, result.New(
			k.rec.ID(),
			k.rec.Filename(),
			confidence(k.breakdown.Final),
			k.rec.PreviewRef(),
			k.rec.RecognizedText(),
			k.rec.VisualDescription(),
			Explain(q, k.rec, k.desc),
		))
	}
	return results, scanned, nil
}

// confidence converts an uncapped final score to a 0-100 percentage rounded
// to one decimal.
func confidence(finalScore float64) float64 {
	c := clamp(finalScore, 0, 1)
	return math.Round(c*1000) / 10
}
