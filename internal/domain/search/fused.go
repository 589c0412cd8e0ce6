package search

// FusedResult is one item after rank fusion: the identifier, its summed
// reciprocal-rank score, and the rank it held in each contributing signal
// (0 when the signal did not produce it).
type FusedResult struct {
	id          string
	title       string
	content     string
	score       float64
	vectorRank  int
	keywordRank int
}

// NewFusedResult creates a fused result with full provenance.
func NewFusedResult(id, title, content string, score float64, vectorRank, keywordRank int) FusedResult {
	return FusedResult{
		id: id, title: title, content: content,
		score: score, vectorRank: vectorRank, keywordRank: keywordRank,
	}
}

// ID returns the chunk identifier.
func (f *FusedResult) ID() string { return f.id }

// Title returns the chunk title.
func (f *FusedResult) Title() string { return f.title }

// Content returns the chunk content.
func (f *FusedResult) Content() string { return f.content }

// Score returns the fused reciprocal-rank score.
func (f *FusedResult) Score() float64 { return f.score }

// VectorRank returns the rank within the vector signal, 0 if absent.
func (f *FusedResult) VectorRank() int { return f.vectorRank }

// KeywordRank returns the rank within the keyword signal, 0 if absent.
func (f *FusedResult) KeywordRank() int { return f.keywordRank }
