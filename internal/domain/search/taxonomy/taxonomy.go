// Package taxonomy holds the static keyword tables shared by the query and
// content classifiers. Keeping them in one place keeps the two classifiers in
// agreement about what counts as, say, "nature" content.
package taxonomy

import "strings"

// Category is a semantic content tag used to classify both queries and records.
type Category string

const (
	// Nature tags outdoor and landscape content.
	Nature Category = "nature"
	// Urban tags city and architecture content.
	Urban Category = "urban"
	// People tags portraits and crowds.
	People Category = "people"
	// Animated tags cartoons, anime, and illustrations.
	Animated Category = "animated"
	// GeneralVisual tags queries that ask for imagery without naming a subject.
	GeneralVisual Category = "general-visual"
)

// Categories lists visual categories in their canonical order. Classification
// iterates this slice so matched-term order is deterministic across calls.
var Categories = []Category{Nature, Urban, People, Animated, GeneralVisual}

// VisualKeywords maps each category to the keywords that signal it. A keyword
// matches by substring against lower-cased input.
var VisualKeywords = map[Category][]string{
	Nature: {
		"mountain", "landscape", "nature", "river", "lake", "forest", "tree",
		"sunset", "sunrise", "sky", "beach", "ocean", "water", "outdoor",
		"scenery", "hiking", "snow", "flower", "wildlife",
	},
	Urban: {
		"city", "street", "building", "skyline", "architecture", "bridge",
		"traffic", "downtown",
	},
	People: {
		"person", "people", "face", "portrait", "crowd", "selfie", "family",
	},
	Animated: {
		"cartoon", "anime", "animated", "illustration", "drawing", "comic",
		"character",
	},
	GeneralVisual: {
		"photo", "picture", "image", "photograph", "wallpaper", "shot",
	},
}

// AuthTerms signal the authentication domain in queries and record text.
var AuthTerms = []string{
	"auth", "login", "log in", "sign in", "signin", "password", "credential",
	"session", "token", "oauth", "account",
}

// FailureTerms signal the failure domain in queries and record text.
var FailureTerms = []string{
	"error", "fail", "failed", "failure", "denied", "invalid", "expired",
	"unauthorized", "forbidden", "incorrect", "wrong", "alert", "warning",
}

// UIIndicators signal interface captures in record text and UI intent in queries.
var UIIndicators = []string{
	"button", "menu", "dialog", "modal", "popup", "window", "form", "input",
	"field", "checkbox", "dropdown", "toolbar", "tab", "navigation",
	"settings", "interface", "browser", "login", "error",
}

// UIQueryKeywords signal that a query is asking for an interface capture.
var UIQueryKeywords = []string{
	"button", "screenshot", "ui", "interface", "dialog", "form", "menu",
	"window", "app", "browser", "settings", "page",
}

// GenericFilenames is the stoplist of throwaway filename stems (camera and OS
// defaults) that carry no search signal.
var GenericFilenames = []string{
	"download", "screenshot", "image", "photo", "untitled", "img", "dsc",
	"pxl", "dcim", "capture", "clipboard",
}

// ContainsAny reports whether any keyword appears as a substring of text.
// Text must already be lower-cased.
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// CountMatches returns how many keywords appear as substrings of text.
// Text must already be lower-cased.
func CountMatches(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}
