package search

import (
	"strings"

	"github.com/screenfind/screenfind/internal/domain/record"
	"github.com/screenfind/screenfind/internal/domain/search/content"
	"github.com/screenfind/screenfind/internal/domain/search/intent"
	"github.com/screenfind/screenfind/internal/domain/search/taxonomy"
)

// Scoring constants. contentScore may exceed 1.0 up to superMatchCap so a
// record matching both halves of an auth-error query outranks any single-signal
// match; the other components stay in [0, 1].
const (
	authTermBonus      = 0.6
	naturePenalty      = 0.8
	superMatchCap      = 1.5
	uiDeprioritized    = 0.1
	neutralContent     = 0.5
	categoryBonus      = 0.8
	animatedBonus      = 0.9
	animatedNameBonus  = 0.15
	termInDescription  = 0.4
	termInRecognized   = 0.1
	phraseInDesc       = 0.8
	phraseInRecognized = 0.6
	wordDescWeight     = 0.4
	wordTextWeight     = 0.2
	genericNameCap     = 0.05
	exactNameMatch     = 0.8
	nameWordExact      = 0.4
	nameWordPartial    = 0.2
	nameMajorityBonus  = 0.3
	descriptiveBonus   = 0.1
	minWordLen         = 2
)

// Breakdown carries the component scores alongside the weighted final score
// for diagnostics and tests.
type Breakdown struct {
	Base     float64
	Content  float64
	Text     float64
	Filename float64
	Final    float64
}

// Score computes the four component scores for one record and combines them
// with the intent-specific weights. queryVec may be nil (empty query), which
// zeroes the base component.
func Score(
	q intent.Descriptor, rec record.Record, cd content.Descriptor, queryVec []float32,
) Breakdown {
	b := Breakdown{
		Base:     CosineSimilarity(queryVec, rec.Embedding()),
		Content:  contentScore(q, rec, cd),
		Text:     textScore(q, rec),
		Filename: filenameScore(q, rec.Filename()),
	}
	b.Final = WeightsFor(q).Combine(b.Base, b.Content, b.Text, b.Filename)
	return b
}

// contentScore is the category-aware component.
//
// Auth-error queries reward auth and failure terms in the record text
// (0.6 each, capped at 1.5) and penalize pure nature shots. Visual queries
// deprioritize interface captures to a flat 0.1 — unless the query itself
// asks for an interface — and otherwise reward matched categories and
// content terms. Plain text queries get a neutral 0.5.
func contentScore(q intent.Descriptor, rec record.Record, cd content.Descriptor) float64 {
	combined := rec.CombinedText()

	switch {
	case q.IsAuthErrorQuery():
		score := 0.0
		if taxonomy.ContainsAny(combined, taxonomy.AuthTerms) {
			score += authTermBonus
		}
		if taxonomy.ContainsAny(combined, taxonomy.FailureTerms) {
			score += authTermBonus
		}
		if cd.HasNatureContent() && cd.UIIndicators() == 0 {
			score -= naturePenalty
		}
		return clamp(score, 0, superMatchCap)

	case q.IsVisualQuery():
		if cd.IsPrimarilyUI() && !q.IsUIQuery() {
			return uiDeprioritized
		}

		score := 0.0
		if cd.IsPrimarilyUI() {
			// The query explicitly wants an interface capture.
			score += categoryBonus
		}

		name := strings.ToLower(rec.Filename())
		for _, cat := range q.VisualCategories() {
			if !cd.HasCategory(cat) {
				continue
			}
			score += categoryBonus
			if cat == taxonomy.Animated {
				score += animatedBonus
				if taxonomy.ContainsAny(name, taxonomy.VisualKeywords[taxonomy.Animated]) {
					score += animatedNameBonus
				}
			}
		}

		desc := strings.ToLower(rec.VisualDescription())
		recText := strings.ToLower(rec.RecognizedText())
		for _, term := range q.ContentTerms() {
			switch {
			case strings.Contains(desc, term):
				score += termInDescription
			case strings.Contains(recText, term):
				score += termInRecognized
			}
		}
		return clamp(score, 0, superMatchCap)

	default:
		return neutralContent
	}
}

// textScore rewards the full query phrase appearing verbatim, then the
// fraction of meaningful query words found in each text field.
func textScore(q intent.Descriptor, rec record.Record) float64 {
	desc := strings.ToLower(rec.VisualDescription())
	recText := strings.ToLower(rec.RecognizedText())
	query := q.NormalizedQuery()

	score := 0.0
	if query != "" {
		switch {
		case strings.Contains(desc, query):
			score += phraseInDesc
		case strings.Contains(recText, query):
			score += phraseInRecognized
		}
	}

	var total, inDesc, inText int
	for _, w := range q.Words() {
		if len(w) <= minWordLen {
			continue
		}
		total++
		if strings.Contains(desc, w) {
			inDesc++
		}
		if strings.Contains(recText, w) {
			inText++
		}
	}
	if total > 0 {
		score += wordDescWeight*float64(inDesc)/float64(total) +
			wordTextWeight*float64(inText)/float64(total)
	}

	return clamp(score, 0, 1)
}

// filenameScore rewards descriptive filenames that echo the query. Generic
// camera/OS default names carry no signal and are pinned near zero.
func filenameScore(q intent.Descriptor, filename string) float64 {
	name, words := normalizeFilename(filename)
	if name == "" {
		return 0
	}
	if isGenericFilename(words) {
		return genericNameCap
	}

	score := 0.0
	query := q.NormalizedQuery()
	if query != "" && strings.Contains(name, query) {
		score += exactNameMatch
	}

	queryWords := q.Words()
	matched := 0
	for _, w := range queryWords {
		if len(w) <= minWordLen {
			continue
		}
		switch {
		case containsWord(words, w):
			score += nameWordExact
			matched++
		case strings.Contains(name, w):
			score += nameWordPartial
			matched++
		}
	}
	if len(queryWords) > 0 && matched*2 > len(queryWords) {
		score += nameMajorityBonus
	}

	if q.IsVisualQuery() && isDescriptiveFilename(words) {
		score += descriptiveBonus
	}

	return clamp(score, 0, 1)
}

// normalizeFilename lowercases, strips the extension, and splits on the
// separators screenshots tools use.
func normalizeFilename(filename string) (string, []string) {
	name := strings.ToLower(filename)
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', '.', ',', '(', ')':
			return ' '
		}
		return r
	}, name)
	name = strings.Join(strings.Fields(name), " ")
	return name, strings.Fields(name)
}

// isGenericFilename matches the stoplist against the leading stem, ignoring
// trailing digits ("IMG_1234", "Screenshot 2025-08-16").
func isGenericFilename(words []string) bool {
	if len(words) == 0 {
		return false
	}
	stem := strings.TrimRight(words[0], "0123456789")
	if stem == "" {
		stem = words[0]
	}
	for _, g := range taxonomy.GenericFilenames {
		if stem == g {
			return true
		}
	}
	return false
}

// isDescriptiveFilename reports at least two words longer than 3 characters.
func isDescriptiveFilename(words []string) bool {
	n := 0
	for _, w := range words {
		if len(w) > 3 {
			n++
		}
	}
	return n >= 2
}

func containsWord(words []string, w string) bool {
	for _, word := range words {
		if word == w {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
