package research

import (
	"context"

	"github.com/relocation-quest/atlas/internal/usecase/search"
)

// Searcher is the hybrid retrieval entry point research surfaces are built on.
type Searcher interface {
	Search(ctx context.Context, rawQuery string, limit int) (search.Result, error)
}

// ImageFinder resolves a topic to a stored image URL.
type ImageFinder interface {
	Find(ctx context.Context, query string) (string, error)
}
