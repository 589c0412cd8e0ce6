package destination

import (
	"context"

	domdest "github.com/relocation-quest/atlas/internal/domain/destination"
)

// Repository covers the destination reads the service composes.
type Repository interface {
	GetBySlug(ctx context.Context, slug string) (*domdest.Record, error)
	Search(ctx context.Context, query string, limit int) ([]domdest.Record, error)
	ListAll(ctx context.Context) ([]domdest.Summary, error)
}
