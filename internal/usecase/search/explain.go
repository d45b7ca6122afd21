package search

import (
	"fmt"
	"strings"

	"github.com/screenfind/screenfind/internal/domain/record"
	"github.com/screenfind/screenfind/internal/domain/search/content"
	"github.com/screenfind/screenfind/internal/domain/search/intent"
)

// maxMatchedElements caps the explanation list per result.
const maxMatchedElements = 5

// fallbackExplanation is returned when no specific match could be named.
// Callers never receive an empty list.
const fallbackExplanation = "General content match"

// Explain produces an ordered, deduplicated list of at most five short
// strings describing why a record matched. Priority: full-phrase matches,
// then matched categories, then content terms with their source, then
// filename words.
func Explain(q intent.Descriptor, rec record.Record, cd content.Descriptor) []string {
	desc := strings.ToLower(rec.VisualDescription())
	recText := strings.ToLower(rec.RecognizedText())
	name := strings.ToLower(rec.Filename())
	query := q.NormalizedQuery()

	var out []string
	add := func(s string) {
		if len(out) >= maxMatchedElements {
			return
		}
		for _, existing := range out {
			if existing == s {
				return
			}
		}
		out = append(out, s)
	}

	if query != "" {
		if strings.Contains(desc, query) {
			add(fmt.Sprintf("Visual: %q found in description", query))
		}
		if strings.Contains(recText, query) {
			add(fmt.Sprintf("Text: %q found in recognized text", query))
		}
	}

	for _, cat := range q.VisualCategories() {
		if cd.HasCategory(cat) {
			add(fmt.Sprintf("Matched category: %s", cat))
		}
	}

	for _, term := range q.ContentTerms() {
		switch {
		case strings.Contains(desc, term):
			add(fmt.Sprintf("Visual: %q found in description", term))
		case strings.Contains(recText, term):
			add(fmt.Sprintf("Text: %q found in recognized text", term))
		}
	}

	for _, w := range q.Words() {
		if len(w) > minWordLen && strings.Contains(name, w) {
			add(fmt.Sprintf("Filename contains %q", w))
		}
	}

	if len(out) == 0 {
		return []string{fallbackExplanation}
	}
	return out
}
