package query

import "testing"

func TestNormalize_Corrections(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"cyprus transcription", "tell me about sigh prus", "tell me about cyprus"},
		{"portugal transcription", "Port of Gal visas", "portugal visas"},
		{"dubai transcription", "moving to dew by", "moving to dubai"},
		{"holland alias", "jobs in Holland", "jobs in netherlands"},
		{"d7 visa", "the d 7 visa process", "the d7 visa process"},
		{"multiple corrections", "sigh prus or porta gal", "cyprus or portugal"},
		{"no corrections", "cost of living in lisbon", "cost of living in lisbon"},
		{"case and whitespace", "  SPAYN  ", "spain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_WordBoundaries(t *testing.T) {
	// A correction must not fire inside a larger token.
	tests := []struct {
		input string
		want  string
	}{
		{"colombia", "colombia"},       // "col" must not match inside
		{"protocol", "protocol"},       // nor at the end of a token
		{"siprusland", "siprusland"},   // "siprus" embedded in a longer token
		{"col for siprus", "cost of living for cyprus"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"sigh prus digital no mad",
		"images of porta gal",
		"col in holland",
		"plain query with no corrections",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
