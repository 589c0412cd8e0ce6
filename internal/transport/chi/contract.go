package chi

import (
	"context"

	domart "github.com/relocation-quest/atlas/internal/domain/article"
	domdest "github.com/relocation-quest/atlas/internal/domain/destination"
	"github.com/relocation-quest/atlas/internal/domain/surface"
	searchuc "github.com/relocation-quest/atlas/internal/usecase/search"
)

// SearchService runs the hybrid retrieval pipeline.
type SearchService interface {
	Search(ctx context.Context, rawQuery string, limit int) (searchuc.Result, error)
}

// DestinationService covers destination profiles and comparisons.
type DestinationService interface {
	Get(ctx context.Context, slug string) (*domdest.Record, error)
	Search(ctx context.Context, query string, limit int) ([]domdest.Record, error)
	ListAll(ctx context.Context) []domdest.Summary
	Compare(ctx context.Context, slugA, slugB string) (domdest.Comparison, error)
	Visas(ctx context.Context, country string) (domdest.VisaInfo, error)
	CostOfLiving(ctx context.Context, country string) (domdest.CostOfLivingInfo, error)
}

// ResearchService produces typed display payloads.
type ResearchService interface {
	Guides(ctx context.Context, query string) (surface.GuideGrid, error)
	Map(ctx context.Context, query string) []surface.Location
	Timeline(ctx context.Context, destination string) (surface.Timeline, error)
	Featured(ctx context.Context) surface.DestinationGrid
	Image(ctx context.Context, topic string) (surface.Image, error)
	Context(ctx context.Context, topic string) (surface.Context, error)
}

// ArticleReader covers direct article lookups and listings.
type ArticleReader interface {
	GetBySlug(ctx context.Context, slug string) (*domart.Record, error)
	ListByCountry(ctx context.Context, country string, limit int) ([]domart.Record, error)
	ListByMode(ctx context.Context, mode string, limit int) ([]domart.Record, error)
}

// ProfileReader resolves user display names.
type ProfileReader interface {
	PreferredName(ctx context.Context, userID string) (string, error)
}
