// Package content classifies one record's text fields into a structured
// descriptor used by the relevance scorer and threshold policy.
package content

import (
	"strings"

	"github.com/screenfind/screenfind/internal/domain/search/taxonomy"
)

// Descriptor is the per-record content classification (ephemeral, derived
// fresh on every search call from the taxonomy tables alone).
type Descriptor struct {
	isPrimarilyUI     bool
	uiIndicators      int
	categoryFlags     map[taxonomy.Category]bool
	categoryCounts    map[taxonomy.Category]int
	textToVisualRatio float64
}

// Classify derives a Descriptor from a record's text fields. Inputs are
// lower-cased internally; callers may pass raw field values.
func Classify(recognizedText, visualDescription, filename string) Descriptor {
	rec := strings.ToLower(recognizedText)
	desc := strings.ToLower(visualDescription)
	name := strings.ToLower(filename)

	combined := rec + " " + desc
	visual := desc + " " + name

	flags := make(map[taxonomy.Category]bool, len(taxonomy.Categories))
	counts := make(map[taxonomy.Category]int, len(taxonomy.Categories))
	for _, cat := range taxonomy.Categories {
		n := taxonomy.CountMatches(visual, taxonomy.VisualKeywords[cat])
		counts[cat] = n
		flags[cat] = n > 0
	}

	uiCount := taxonomy.CountMatches(combined, taxonomy.UIIndicators)

	// Text-dense captures are interface shots, not photographs. Strict
	// comparisons here: downstream scoring branches on the boolean.
	isUI := uiCount > 2 || len(rec) > 2*len(desc)

	ratio := float64(len(rec)) / float64(max(1, len(desc)))

	return Descriptor{
		isPrimarilyUI:     isUI,
		uiIndicators:      uiCount,
		categoryFlags:     flags,
		categoryCounts:    counts,
		textToVisualRatio: ratio,
	}
}

// IsPrimarilyUI reports whether the record is a text-dense interface capture.
func (d Descriptor) IsPrimarilyUI() bool { return d.isPrimarilyUI }

// UIIndicators returns the raw UI indicator count.
func (d Descriptor) UIIndicators() int { return d.uiIndicators }

// HasCategory reports whether the record exhibits the given category.
func (d Descriptor) HasCategory(cat taxonomy.Category) bool { return d.categoryFlags[cat] }

// CategoryCount returns the raw indicator count for a category.
func (d Descriptor) CategoryCount(cat taxonomy.Category) int { return d.categoryCounts[cat] }

// HasNatureContent reports nature-flavored content.
func (d Descriptor) HasNatureContent() bool { return d.categoryFlags[taxonomy.Nature] }

// HasUrbanContent reports urban content.
func (d Descriptor) HasUrbanContent() bool { return d.categoryFlags[taxonomy.Urban] }

// HasPeopleContent reports people content.
func (d Descriptor) HasPeopleContent() bool { return d.categoryFlags[taxonomy.People] }

// HasAnimatedContent reports animated content.
func (d Descriptor) HasAnimatedContent() bool { return d.categoryFlags[taxonomy.Animated] }

// TextToVisualRatio returns len(recognizedText) / max(1, len(visualDescription)).
func (d Descriptor) TextToVisualRatio() float64 { return d.textToVisualRatio }
