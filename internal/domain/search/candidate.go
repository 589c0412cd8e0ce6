// Package search defines the ranked candidate and fused-result types produced
// by the retrieval signals.
package search

// Candidate is one row from a single retrieval signal: an identifier with its
// dense 1-based rank inside that signal and the signal's raw score. Ranks are
// assigned in strictly descending score order; ties keep input order.
type Candidate struct {
	id      string
	title   string
	content string
	rank    int
	score   float64
}

// NewCandidate creates a ranked candidate.
func NewCandidate(id, title, content string, rank int, score float64) Candidate {
	return Candidate{id: id, title: title, content: content, rank: rank, score: score}
}

// ID returns the chunk identifier.
func (c *Candidate) ID() string { return c.id }

// Title returns the chunk title.
func (c *Candidate) Title() string { return c.title }

// Content returns the chunk content.
func (c *Candidate) Content() string { return c.content }

// Rank returns the 1-based position within the signal.
func (c *Candidate) Rank() int { return c.rank }

// Score returns the signal's raw score (similarity or keyword tier).
func (c *Candidate) Score() float64 { return c.score }

// Rank assigns dense 1-based ranks to a slice already ordered by descending
// score and returns it.
func Rank(ordered []Candidate) []Candidate {
	for i := range ordered {
		ordered[i].rank = i + 1
	}
	return ordered
}
