package result

// Result is a single ranked search hit returned to the caller.
type Result struct {
	id                string
	filename          string
	confidenceScore   float64
	previewRef        string
	recognizedText    string
	visualDescription string
	matchedElements   []string
}

// New creates a search result.
func New(
	id, filename string, confidenceScore float64,
	previewRef, recognizedText, visualDescription string,
	matchedElements []string,
) Result {
	return Result{
		id:                id,
		filename:          filename,
		confidenceScore:   confidenceScore,
		previewRef:        previewRef,
		recognizedText:    recognizedText,
		visualDescription: visualDescription,
		matchedElements:   matchedElements,
	}
}

// ID returns the record identifier.
func (r Result) ID() string { return r.id }

// Filename returns the capture filename.
func (r Result) Filename() string { return r.filename }

// ConfidenceScore returns the 0-100 confidence score, rounded to one decimal.
func (r Result) ConfidenceScore() float64 { return r.confidenceScore }

// PreviewRef returns the opaque preview locator.
func (r Result) PreviewRef() string { return r.previewRef }

// RecognizedText returns the recognized text of the hit.
func (r Result) RecognizedText() string { return r.recognizedText }

// VisualDescription returns the visual description of the hit.
func (r Result) VisualDescription() string { return r.visualDescription }

// MatchedElements returns 1 to 5 human-readable match explanations.
func (r Result) MatchedElements() []string { return r.matchedElements }
