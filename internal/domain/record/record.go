package record

import (
	"fmt"
	"strings"
	"time"
)

// Record is one processed screen capture (immutable value object).
// RecognizedText and VisualDescription may be empty; Embedding is set once
// ingest processing completes and is nil until then.
type Record struct {
	id                string
	filename          string
	recognizedText    string
	visualDescription string
	embedding         []float32
	previewRef        string
	createdAt         int64
}

// New validates and creates a Record. The embedding is attached later,
// once the ingest pipeline has computed it.
func New(id, filename, recognizedText, visualDescription, previewRef string) (Record, error) {
	if id == "" {
		return Record{}, fmt.Errorf("record id is required")
	}
	if strings.TrimSpace(filename) == "" {
		return Record{}, fmt.Errorf("filename is required")
	}
	return Record{
		id:                id,
		filename:          filename,
		recognizedText:    recognizedText,
		visualDescription: visualDescription,
		previewRef:        previewRef,
		createdAt:         time.Now().UnixMilli(),
	}, nil
}

// Reconstruct creates a Record without validation (storage hydration).
func Reconstruct(
	id, filename, recognizedText, visualDescription string,
	embedding []float32, previewRef string, createdAt int64,
) Record {
	return Record{
		id:                id,
		filename:          filename,
		recognizedText:    recognizedText,
		visualDescription: visualDescription,
		embedding:         embedding,
		previewRef:        previewRef,
		createdAt:         createdAt,
	}
}

// WithEmbedding returns a copy of the record carrying the given vector.
func (r Record) WithEmbedding(vec []float32) Record {
	r.embedding = vec
	return r
}

// ID returns the record identifier.
func (r Record) ID() string { return r.id }

// Filename returns the original capture filename.
func (r Record) Filename() string { return r.filename }

// RecognizedText returns the text recognized in the capture (may be empty).
func (r Record) RecognizedText() string { return r.recognizedText }

// VisualDescription returns the free-form visual description (may be empty).
func (r Record) VisualDescription() string { return r.visualDescription }

// Embedding returns the embedding vector, or nil if not yet computed.
func (r Record) Embedding() []float32 { return r.embedding }

// HasEmbedding reports whether the record is searchable.
func (r Record) HasEmbedding() bool { return len(r.embedding) > 0 }

// PreviewRef returns the opaque preview locator.
func (r Record) PreviewRef() string { return r.previewRef }

// CreatedAt returns the creation timestamp (unix millis).
func (r Record) CreatedAt() int64 { return r.createdAt }

// CombinedText returns the lower-cased concatenation of recognized text and
// visual description, the form scoring heuristics match keywords against.
func (r Record) CombinedText() string {
	return strings.ToLower(r.recognizedText + " " + r.visualDescription)
}
