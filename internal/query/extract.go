package query

import (
	"regexp"
	"strings"
)

// stopPhrases are greeting/request framing fillers stripped before keyword
// matching. Removal is whole-word so "the" cannot fire inside tokens like
// "netherlands".
var stopPhrases = []string{
	"tell me about", "what is", "what's", "show me", "how do i", "how can i",
	"i want to", "i'd like to", "can you", "could you", "moving to",
	"relocating to", "please", "the",
}

// importantKeywords survive term extraction alongside a matched destination.
var importantKeywords = map[string]struct{}{
	"visa": {}, "cost": {}, "job": {}, "tax": {},
	"living": {}, "guide": {}, "nomad": {}, "digital": {},
}

var stopPhraseRules = compileStopPhrases()

func compileStopPhrases() []*regexp.Regexp {
	rules := make([]*regexp.Regexp, len(stopPhrases))
	for i, p := range stopPhrases {
		rules[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(p) + `\b`)
	}
	return rules
}

// Extractor reduces a verbose natural-language query to a compact search term.
type Extractor struct {
	destinations DestinationMatcher
}

// NewExtractor creates a term extractor backed by the given destination matcher.
func NewExtractor(destinations DestinationMatcher) *Extractor {
	return &Extractor{destinations: destinations}
}

// Terms strips stop phrases from the lowercased query, then looks for a known
// destination. When one is found, the result is the destination followed by
// any important residual keywords in the order they occur. With no destination
// the cleaned query is returned verbatim, and a query that cleans down to
// nothing falls back to the original input so the search term is never empty.
func (e *Extractor) Terms(query string) string {
	cleaned := strings.ToLower(strings.TrimSpace(query))
	for _, re := range stopPhraseRules {
		cleaned = re.ReplaceAllString(cleaned, " ")
	}
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	if dest, ok := e.destinations.Match(cleaned); ok {
		remaining := strings.ReplaceAll(cleaned, dest, " ")
		var important []string
		for _, w := range strings.Fields(remaining) {
			if _, ok := importantKeywords[w]; ok {
				important = append(important, w)
			}
		}
		if len(important) > 0 {
			return dest + " " + strings.Join(important, " ")
		}
		return dest
	}

	if cleaned == "" {
		return query
	}
	return cleaned
}
