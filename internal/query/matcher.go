package query

import "strings"

// DestinationMatcher finds a known destination entity inside free text.
// The matching strategy is isolated behind this interface so substring
// matching can be swapped for a tokenized strategy without touching callers.
type DestinationMatcher interface {
	// Match returns the first known destination found in text.
	Match(text string) (string, bool)
}

// knownDestinations is the closed destination vocabulary, in match-priority
// order. Matching is substring-based, so a destination that is a substring of
// another token can match unintentionally; that is an accepted limitation of
// the closed vocabulary, not something to silently correct.
var knownDestinations = []string{
	"portugal", "spain", "cyprus", "dubai", "canada", "australia", "uk",
	"new zealand", "france", "germany", "netherlands", "mexico", "thailand",
	"malta", "greece", "italy", "indonesia", "bali", "lisbon", "barcelona",
	"madrid", "amsterdam", "berlin", "paris", "london", "dublin", "singapore",
}

// substringMatcher scans an ordered vocabulary; first match wins.
type substringMatcher struct {
	vocabulary []string
}

// NewDestinationMatcher creates the default substring matcher over the known
// destination vocabulary.
func NewDestinationMatcher() DestinationMatcher {
	return &substringMatcher{vocabulary: knownDestinations}
}

// NewDestinationMatcherWithVocabulary creates a substring matcher over a
// custom vocabulary, in match-priority order.
func NewDestinationMatcherWithVocabulary(vocabulary []string) DestinationMatcher {
	return &substringMatcher{vocabulary: vocabulary}
}

func (m *substringMatcher) Match(text string) (string, bool) {
	for _, dest := range m.vocabulary {
		if strings.Contains(text, dest) {
			return dest, true
		}
	}
	return "", false
}
