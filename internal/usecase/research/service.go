// Package research composes typed display payloads for the conversational
// layer: guide grids, destination maps, visa timelines, featured grids, topic
// images, and the combined per-destination research context.
package research

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/relocation-quest/atlas/internal/domain"
	"github.com/relocation-quest/atlas/internal/domain/surface"
)

// guideLimit is the page size for guide-backed surfaces.
const guideLimit = 6

type Service struct {
	searcher Searcher
	images   ImageFinder
	logger   *zap.Logger
}

func NewService(searcher Searcher, images ImageFinder, logger *zap.Logger) *Service {
	return &Service{searcher: searcher, images: images, logger: logger}
}

// Guides runs hybrid retrieval and shapes the hits for grid display, deriving
// location and visa category from each guide's text.
func (s *Service) Guides(ctx context.Context, query string) (surface.GuideGrid, error) {
	res, err := s.searcher.Search(ctx, query, guideLimit)
	if err != nil {
		return surface.GuideGrid{}, err
	}

	grid := surface.GuideGrid{Query: res.NormalizedQuery, Guides: []surface.GuideCard{}}
	for i := range res.Articles {
		a := &res.Articles[i]
		text := strings.ToLower(a.Title + " " + a.Content)
		grid.Guides = append(grid.Guides, surface.GuideCard{
			ID:           a.ID,
			Title:        a.Title,
			Excerpt:      a.Content,
			HeroImageURL: a.HeroImageURL,
			Score:        a.Score,
			Location:     deriveLocation(text),
			VisaType:     deriveVisaType(text),
		})
	}
	return grid, nil
}

// Map returns the coordinates of every known destination the query mentions.
// An unrecognized query yields an empty map, not an error.
func (s *Service) Map(_ context.Context, query string) []surface.Location {
	text := strings.ToLower(query)

	keywords := make([]string, 0, len(surface.Locations))
	for k := range surface.Locations {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)

	out := []surface.Location{}
	seen := map[string]bool{}
	for _, k := range keywords {
		if !strings.Contains(text, k) {
			continue
		}
		loc := surface.Locations[k]
		if seen[loc.Name] {
			continue
		}
		seen[loc.Name] = true
		out = append(out, loc)
	}
	return out
}

// Timeline returns the visa application timeline for a destination.
func (s *Service) Timeline(_ context.Context, destination string) (surface.Timeline, error) {
	key := strings.ToLower(strings.TrimSpace(destination))
	steps, ok := surface.VisaTimelines[key]
	if !ok {
		return surface.Timeline{}, domain.ErrNotFound
	}
	return surface.Timeline{Destination: key, Steps: steps}, nil
}

// Featured returns the curated featured-destination grid.
func (s *Service) Featured(_ context.Context) surface.DestinationGrid {
	return surface.DestinationGrid{Destinations: surface.Featured}
}

// Image resolves a topic to a stored topic image.
func (s *Service) Image(ctx context.Context, topic string) (surface.Image, error) {
	url, err := s.images.Find(ctx, topic)
	if err != nil {
		return surface.Image{}, err
	}
	return surface.Image{Topic: topic, URL: url}, nil
}

// Context assembles the combined research view for a topic: its guides plus
// the first location, visa type, and hero image derivable from them. A topic
// image is used as the hero fallback when no guide carries one; that lookup
// failing is not an error.
func (s *Service) Context(ctx context.Context, topic string) (surface.Context, error) {
	grid, err := s.Guides(ctx, topic)
	if err != nil {
		return surface.Context{}, err
	}

	out := surface.Context{Topic: topic, Guides: grid.Guides}
	for i := range grid.Guides {
		g := &grid.Guides[i]
		if out.Location == nil && g.Location != nil {
			out.Location = g.Location
		}
		if out.VisaType == "" && g.VisaType != "" {
			out.VisaType = g.VisaType
		}
		if out.HeroImageURL == "" && g.HeroImageURL != "" {
			out.HeroImageURL = g.HeroImageURL
		}
	}

	if out.HeroImageURL == "" {
		url, err := s.images.Find(ctx, topic)
		switch {
		case err == nil:
			out.HeroImageURL = url
		case !errors.Is(err, domain.ErrNotFound):
			s.logger.Warn("Topic image lookup failed", zap.String("topic", topic), zap.Error(err))
		}
	}
	return out, nil
}

// deriveLocation returns the mappable destination mentioned earliest in the
// text, or nil. Ties at the same offset resolve alphabetically so the result
// is stable.
func deriveLocation(text string) *surface.Location {
	keywords := make([]string, 0, len(surface.Locations))
	for k := range surface.Locations {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)

	best, bestIdx := "", -1
	for _, k := range keywords {
		if idx := strings.Index(text, k); idx >= 0 && (bestIdx < 0 || idx < bestIdx) {
			best, bestIdx = k, idx
		}
	}
	if bestIdx < 0 {
		return nil
	}
	loc := surface.Locations[best]
	return &loc
}

// deriveVisaType returns the first visa category whose keyword appears in the
// text, in vocabulary order.
func deriveVisaType(text string) string {
	for _, vc := range surface.VisaCategories {
		if strings.Contains(text, vc.Keyword) {
			return vc.Category
		}
	}
	return ""
}
