package search

import "github.com/screenfind/screenfind/internal/domain/search/intent"

// Weights blend the four component scores into the final score. One fixed
// table per query intent variant; the scorer itself stays a pure function of
// (weights, components).
type Weights struct {
	Base     float64
	Content  float64
	Text     float64
	Filename float64
}

var (
	// authErrorWeights lean on text matching: auth failures are recognized
	// by literal error text, not by embedding proximity.
	authErrorWeights = Weights{Base: 0.25, Content: 0.2, Text: 0.45, Filename: 0.1}

	// visualWeights lean on content classification; recognized text is a
	// weak signal for photographs.
	visualWeights = Weights{Base: 0.15, Content: 0.5, Text: 0.15, Filename: 0.2}

	// genericWeights are the balanced default for plain text queries.
	genericWeights = Weights{Base: 0.3, Content: 0.25, Text: 0.3, Filename: 0.15}
)

// WeightsFor selects the weight table for a classified query.
func WeightsFor(q intent.Descriptor) Weights {
	switch {
	case q.IsAuthErrorQuery():
		return authErrorWeights
	case q.IsVisualQuery():
		return visualWeights
	default:
		return genericWeights
	}
}

// Combine returns the weighted sum of the component scores. The result is
// deliberately uncapped: clamping to 100% happens only at presentation time.
func (w Weights) Combine(base, content, text, filename float64) float64 {
	return w.Base*base + w.Content*content + w.Text*text + w.Filename*filename
}
