package atlas

import (
	"context"
	"fmt"

	"github.com/relocation-quest/atlas/internal/domain/surface"
	researchuc "github.com/relocation-quest/atlas/internal/usecase/research"
)

// ResearchService serves display-ready research payloads: guide grids, map
// pins, visa timelines, featured destinations, and combined context views.
type ResearchService struct {
	svc *researchuc.Service
}

// GuideCard is one article shaped for grid display.
type GuideCard struct {
	ID           string
	Title        string
	Excerpt      string
	HeroImageURL string
	Score        float64
	Location     *Location
	VisaType     string
}

// GuideGrid holds search hits shaped for grid display.
type GuideGrid struct {
	Query  string
	Guides []GuideCard
}

// Location is a destination point for map rendering.
type Location struct {
	Name        string
	Lat         float64
	Lng         float64
	Description string
}

// TimelineStep is one stage of a visa application process.
type TimelineStep struct {
	Step        int
	Title       string
	Description string
}

// Timeline is a visa application timeline for one destination.
type Timeline struct {
	Destination string
	Steps       []TimelineStep
}

// FeaturedDestination is one entry of the featured-destination grid.
type FeaturedDestination struct {
	Name        string
	Image       string
	Highlight   string
	Description string
}

// ResearchContext is the combined research view for one topic: guides plus
// whatever location, visa type, and hero image could be derived from them.
type ResearchContext struct {
	Topic        string
	Guides       []GuideCard
	Location     *Location
	VisaType     string
	HeroImageURL string
}

// Guides runs a search and shapes the hits into a guide grid.
func (s *ResearchService) Guides(ctx context.Context, query string) (GuideGrid, error) {
	grid, err := s.svc.Guides(ctx, query)
	if err != nil {
		return GuideGrid{}, fmt.Errorf("research guides: %w", err)
	}
	return GuideGrid{Query: grid.Query, Guides: fromGuideCards(grid.Guides)}, nil
}

// Map returns destination pins matching the query.
func (s *ResearchService) Map(ctx context.Context, query string) []Location {
	locs := s.svc.Map(ctx, query)
	out := make([]Location, len(locs))
	for i, l := range locs {
		out[i] = fromLocation(l)
	}
	return out
}

// Timeline returns the visa application timeline for a destination.
func (s *ResearchService) Timeline(ctx context.Context, destination string) (Timeline, error) {
	tl, err := s.svc.Timeline(ctx, destination)
	if err != nil {
		return Timeline{}, fmt.Errorf("research timeline: %w", err)
	}
	steps := make([]TimelineStep, len(tl.Steps))
	for i, st := range tl.Steps {
		steps[i] = TimelineStep{Step: st.Step, Title: st.Title, Description: st.Description}
	}
	return Timeline{Destination: tl.Destination, Steps: steps}, nil
}

// Featured returns the curated featured-destination grid.
func (s *ResearchService) Featured(ctx context.Context) []FeaturedDestination {
	grid := s.svc.Featured(ctx)
	out := make([]FeaturedDestination, len(grid.Destinations))
	for i, d := range grid.Destinations {
		out[i] = FeaturedDestination{
			Name:        d.Name,
			Image:       d.Image,
			Highlight:   d.Highlight,
			Description: d.Description,
		}
	}
	return out
}

// Image looks up the best image URL for a topic.
func (s *ResearchService) Image(ctx context.Context, topic string) (string, error) {
	img, err := s.svc.Image(ctx, topic)
	if err != nil {
		return "", fmt.Errorf("research image: %w", err)
	}
	return img.URL, nil
}

// Context assembles the combined research view for a topic.
func (s *ResearchService) Context(ctx context.Context, topic string) (ResearchContext, error) {
	rc, err := s.svc.Context(ctx, topic)
	if err != nil {
		return ResearchContext{}, fmt.Errorf("research context: %w", err)
	}
	out := ResearchContext{
		Topic:        rc.Topic,
		Guides:       fromGuideCards(rc.Guides),
		VisaType:     rc.VisaType,
		HeroImageURL: rc.HeroImageURL,
	}
	if rc.Location != nil {
		loc := fromLocation(*rc.Location)
		out.Location = &loc
	}
	return out, nil
}

func fromGuideCards(cards []surface.GuideCard) []GuideCard {
	out := make([]GuideCard, len(cards))
	for i, c := range cards {
		out[i] = GuideCard{
			ID:           c.ID,
			Title:        c.Title,
			Excerpt:      c.Excerpt,
			HeroImageURL: c.HeroImageURL,
			Score:        c.Score,
			VisaType:     c.VisaType,
		}
		if c.Location != nil {
			loc := fromLocation(*c.Location)
			out[i].Location = &loc
		}
	}
	return out
}

func fromLocation(l surface.Location) Location {
	return Location{Name: l.Name, Lat: l.Lat, Lng: l.Lng, Description: l.Description}
}
