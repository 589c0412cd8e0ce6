package search

import (
	"context"

	domart "github.com/relocation-quest/atlas/internal/domain/article"
	domsearch "github.com/relocation-quest/atlas/internal/domain/search"
)

// ChunkRepository produces per-signal candidate sets over knowledge chunks.
type ChunkRepository interface {
	VectorCandidates(ctx context.Context, embedding []float32, floor float64, pool int) ([]domsearch.Candidate, error)
	KeywordCandidates(ctx context.Context, term string, pool int) ([]domsearch.Candidate, error)
}

// ArticleRepository covers the article reads the search flow needs: the
// degraded-mode keyword search and the display metadata for enrichment.
type ArticleRepository interface {
	KeywordSearch(ctx context.Context, term string, limit int, country string) ([]domart.Record, error)
	DisplayIndex(ctx context.Context) ([]domart.Record, error)
}
