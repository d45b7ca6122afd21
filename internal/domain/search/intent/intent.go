// Package intent classifies a raw search query into a structured descriptor
// that drives scoring weights, thresholds, and explanations downstream.
package intent

import (
	"strings"

	"github.com/screenfind/screenfind/internal/domain/search/taxonomy"
)

// Descriptor is the structured classification of one query (immutable,
// ephemeral: one per search call).
type Descriptor struct {
	normalizedQuery  string
	isVisualQuery    bool
	visualCategories []taxonomy.Category
	isUIQuery        bool
	isAuthErrorQuery bool
	contentTerms     []string
}

// Classify parses a raw query string into a Descriptor. It is a pure function
// of the query and the taxonomy tables. Empty or all-whitespace queries yield
// a well-formed descriptor with no category matches.
func Classify(query string) Descriptor {
	q := strings.ToLower(strings.TrimSpace(query))

	d := Descriptor{normalizedQuery: q}
	if q == "" {
		return d
	}

	for _, cat := range taxonomy.Categories {
		keywords := taxonomy.VisualKeywords[cat]
		matched := false
		for _, kw := range keywords {
			if strings.Contains(q, kw) {
				if !matched {
					d.visualCategories = append(d.visualCategories, cat)
					matched = true
				}
				d.contentTerms = appendUnique(d.contentTerms, kw)
			}
		}
	}
	d.isVisualQuery = len(d.visualCategories) > 0

	d.isUIQuery = taxonomy.ContainsAny(q, taxonomy.UIQueryKeywords)

	// Auth-error intent requires both an authentication term and a failure term.
	hasAuth := taxonomy.ContainsAny(q, taxonomy.AuthTerms)
	hasFailure := taxonomy.ContainsAny(q, taxonomy.FailureTerms)
	d.isAuthErrorQuery = hasAuth && hasFailure

	return d
}

// NormalizedQuery returns the lower-cased, trimmed query string.
func (d Descriptor) NormalizedQuery() string { return d.normalizedQuery }

// IsVisualQuery reports whether the query asks for visual content.
func (d Descriptor) IsVisualQuery() bool { return d.isVisualQuery }

// VisualCategories returns the matched categories in taxonomy order.
func (d Descriptor) VisualCategories() []taxonomy.Category { return d.visualCategories }

// HasCategory reports whether the query matched the given category.
func (d Descriptor) HasCategory(cat taxonomy.Category) bool {
	for _, c := range d.visualCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// IsUIQuery reports whether the query asks for an interface capture.
func (d Descriptor) IsUIQuery() bool { return d.isUIQuery }

// IsAuthErrorQuery reports whether the query combines authentication and
// failure terms.
func (d Descriptor) IsAuthErrorQuery() bool { return d.isAuthErrorQuery }

// ContentTerms returns every category keyword found in the query, in taxonomy
// iteration order.
func (d Descriptor) ContentTerms() []string { return d.contentTerms }

// Words returns the query split on whitespace.
func (d Descriptor) Words() []string { return strings.Fields(d.normalizedQuery) }

func appendUnique(terms []string, term string) []string {
	for _, t := range terms {
		if t == term {
			return terms
		}
	}
	return append(terms, term)
}
