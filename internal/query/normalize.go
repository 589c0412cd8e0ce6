// Package query implements the deterministic query-normalization pipeline:
// phonetic correction of voice-transcribed input, stop-phrase stripping, and
// destination-entity extraction.
package query

import (
	"regexp"
	"strings"
)

// phoneticCorrections is the ordered table of voice-transcription fixes.
// Each pair maps a commonly mis-transcribed phrase to its canonical term.
var phoneticCorrections = []struct {
	wrong   string
	correct string
}{
	// Cyprus
	{"sigh prus", "cyprus"},
	{"sigh pruss", "cyprus"},
	{"si prus", "cyprus"},
	{"cypras", "cyprus"},
	{"siprus", "cyprus"},
	// Portugal
	{"port of gal", "portugal"},
	{"porta gal", "portugal"},
	{"portugall", "portugal"},
	{"portogal", "portugal"},
	// Dubai
	{"dew by", "dubai"},
	{"do by", "dubai"},
	{"doo by", "dubai"},
	{"dubay", "dubai"},
	// Malta
	{"ma tah", "malta"},
	{"molta", "malta"},
	{"maltah", "malta"},
	// Spain
	{"spayn", "spain"},
	// Netherlands
	{"nether lands", "netherlands"},
	{"holland", "netherlands"},
	// Greece
	{"greace", "greece"},
	{"grece", "greece"},
	// Croatia
	{"crow asia", "croatia"},
	{"kro asia", "croatia"},
	// Estonia
	{"es tonia", "estonia"},
	{"astonia", "estonia"},
	// Latvia
	{"lat via", "latvia"},
	// Lithuania
	{"lith you ania", "lithuania"},
	// Visa terms
	{"d 7 visa", "d7 visa"},
	{"d seven visa", "d7 visa"},
	{"dee seven", "d7 visa"},
	{"digital no mad", "digital nomad"},
	{"no mad visa", "nomad visa"},
	// Cost of living
	{"col", "cost of living"},
	// Truncated image queries
	{"images of", "show me destination images"},
	{"pictures of", "show me destination images"},
	{"photos of", "show me destination images"},
}

type correctionRule struct {
	re      *regexp.Regexp
	correct string
}

var correctionRules = compileCorrections()

func compileCorrections() []correctionRule {
	rules := make([]correctionRule, len(phoneticCorrections))
	for i, c := range phoneticCorrections {
		// Whole-word match only: a correction must not fire inside a larger token.
		rules[i] = correctionRule{
			re:      regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(c.wrong) + `\b`),
			correct: c.correct,
		}
	}
	return rules
}

// Normalize lowercases and trims the query, then applies every phonetic
// correction on whole-word boundaries. Pure and deterministic; applying it
// twice yields the same result.
func Normalize(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	for _, r := range correctionRules {
		normalized = r.re.ReplaceAllString(normalized, r.correct)
	}
	return strings.Join(strings.Fields(normalized), " ")
}
