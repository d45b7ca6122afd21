package search

import (
	"github.com/screenfind/screenfind/internal/domain/record"
	"github.com/screenfind/screenfind/internal/domain/search/content"
	"github.com/screenfind/screenfind/internal/domain/search/intent"
	"github.com/screenfind/screenfind/internal/domain/search/taxonomy"
)

// Threshold cutoffs. Deliberately asymmetric: a false positive costs more on
// a narrowly-scoped auth or visual query than on a generic text query.
const (
	authMatchThreshold     = 0.2
	authUnrelatedThreshold = 0.9
	authDefaultThreshold   = 0.6
	visualUIThreshold      = 0.8
	visualThreshold        = 0.15
	genericThreshold       = 0.1

	// longTextChars marks a capture as text-heavy for UI suppression.
	longTextChars = 200
)

// PassesThreshold decides whether a scored record is included in the results.
func PassesThreshold(
	q intent.Descriptor, cd content.Descriptor, rec record.Record, finalScore float64,
) bool {
	switch {
	case q.IsAuthErrorQuery():
		combined := rec.CombinedText()
		if taxonomy.ContainsAny(combined, taxonomy.AuthTerms) ||
			taxonomy.ContainsAny(combined, taxonomy.FailureTerms) {
			return finalScore > authMatchThreshold
		}
		// Clearly unrelated captures need a near-impossible score.
		if cd.HasNatureContent() || cd.HasAnimatedContent() {
			return finalScore > authUnrelatedThreshold
		}
		return finalScore > authDefaultThreshold

	case q.IsVisualQuery():
		if !q.IsUIQuery() &&
			len(rec.RecognizedText()) > longTextChars && cd.UIIndicators() > 0 {
			return finalScore > visualUIThreshold
		}
		return finalScore > visualThreshold

	default:
		return finalScore > genericThreshold
	}
}
