package atlas

import (
	"context"
	"encoding/json"
	"fmt"

	domdest "github.com/relocation-quest/atlas/internal/domain/destination"
	destinationuc "github.com/relocation-quest/atlas/internal/usecase/destination"
)

// DestinationService serves structured destination profiles.
type DestinationService struct {
	svc *destinationuc.Service
}

// Destination is a full destination profile. Section fields carry the
// store's JSON verbatim.
type Destination struct {
	Slug         string
	CountryName  string
	Flag         string
	Region       string
	Language     string
	HeroTitle    string
	HeroSubtitle string
	HeroImageURL string
	Featured     bool
	Priority     int

	QuickFacts   json.RawMessage
	Highlights   json.RawMessage
	Visas        json.RawMessage
	CostOfLiving json.RawMessage
	JobMarket    json.RawMessage
	FAQs         json.RawMessage
}

// DestinationSummary is the compact listing form.
type DestinationSummary struct {
	Slug         string
	CountryName  string
	Flag         string
	Region       string
	HeroSubtitle string
	Featured     bool
	Priority     int
}

// ComparisonSide identifies one destination within a comparison.
type ComparisonSide struct {
	Slug   string
	Name   string
	Flag   string
	Region string
}

// Comparison is a side-by-side view of two destinations. Section maps are
// keyed by country name.
type Comparison struct {
	Destinations [2]ComparisonSide
	Visas        map[string]json.RawMessage
	CostOfLiving map[string]json.RawMessage
	JobMarket    map[string]json.RawMessage
}

// VisaInfo is the answer to a "visas for X" lookup.
type VisaInfo struct {
	Country      string
	Flag         string
	Visas        json.RawMessage
	HeroImageURL string
}

// CostOfLivingInfo is the answer to a cost-of-living lookup.
type CostOfLivingInfo struct {
	Country   string
	Flag      string
	Cities    json.RawMessage
	JobMarket json.RawMessage
}

// Get fetches one destination by slug.
func (s *DestinationService) Get(ctx context.Context, slug string) (Destination, error) {
	rec, err := s.svc.Get(ctx, slug)
	if err != nil {
		return Destination{}, fmt.Errorf("get destination: %w", err)
	}
	return fromDestination(rec), nil
}

// Search finds destinations matching a free-text query.
func (s *DestinationService) Search(ctx context.Context, query string, limit int) ([]Destination, error) {
	recs, err := s.svc.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search destinations: %w", err)
	}
	out := make([]Destination, len(recs))
	for i := range recs {
		out[i] = fromDestination(&recs[i])
	}
	return out, nil
}

// List returns every enabled destination summary.
func (s *DestinationService) List(ctx context.Context) []DestinationSummary {
	sums := s.svc.ListAll(ctx)
	out := make([]DestinationSummary, len(sums))
	for i, d := range sums {
		out[i] = DestinationSummary{
			Slug:         d.Slug,
			CountryName:  d.CountryName,
			Flag:         d.Flag,
			Region:       d.Region,
			HeroSubtitle: d.HeroSubtitle,
			Featured:     d.Featured,
			Priority:     d.Priority,
		}
	}
	return out
}

// Compare builds a side-by-side comparison of two destinations.
func (s *DestinationService) Compare(ctx context.Context, slugA, slugB string) (Comparison, error) {
	cmp, err := s.svc.Compare(ctx, slugA, slugB)
	if err != nil {
		return Comparison{}, fmt.Errorf("compare destinations: %w", err)
	}
	return fromComparison(cmp), nil
}

// Visas resolves a free-text country reference to its visa section.
func (s *DestinationService) Visas(ctx context.Context, country string) (VisaInfo, error) {
	info, err := s.svc.Visas(ctx, country)
	if err != nil {
		return VisaInfo{}, fmt.Errorf("visas: %w", err)
	}
	return VisaInfo{
		Country:      info.Country,
		Flag:         info.Flag,
		Visas:        info.Visas,
		HeroImageURL: info.HeroImageURL,
	}, nil
}

// CostOfLiving resolves a free-text country reference to its cost section.
func (s *DestinationService) CostOfLiving(ctx context.Context, country string) (CostOfLivingInfo, error) {
	info, err := s.svc.CostOfLiving(ctx, country)
	if err != nil {
		return CostOfLivingInfo{}, fmt.Errorf("cost of living: %w", err)
	}
	return CostOfLivingInfo{
		Country:   info.Country,
		Flag:      info.Flag,
		Cities:    info.Cities,
		JobMarket: info.JobMarket,
	}, nil
}

func fromDestination(r *domdest.Record) Destination {
	return Destination{
		Slug:         r.Slug,
		CountryName:  r.CountryName,
		Flag:         r.Flag,
		Region:       r.Region,
		Language:     r.Language,
		HeroTitle:    r.HeroTitle,
		HeroSubtitle: r.HeroSubtitle,
		HeroImageURL: r.HeroImageURL,
		Featured:     r.Featured,
		Priority:     r.Priority,
		QuickFacts:   r.QuickFacts,
		Highlights:   r.Highlights,
		Visas:        r.Visas,
		CostOfLiving: r.CostOfLiving,
		JobMarket:    r.JobMarket,
		FAQs:         r.FAQs,
	}
}

func fromComparison(c domdest.Comparison) Comparison {
	out := Comparison{
		Visas:        c.Visas,
		CostOfLiving: c.CostOfLiving,
		JobMarket:    c.JobMarket,
	}
	for i, side := range c.Destinations {
		out.Destinations[i] = ComparisonSide{
			Slug:   side.Slug,
			Name:   side.Name,
			Flag:   side.Flag,
			Region: side.Region,
		}
	}
	return out
}
