// Package destination exposes structured destination profiles: lookups,
// fuzzy search, listings, and side-by-side comparisons.
package destination

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/relocation-quest/atlas/internal/domain"
	domdest "github.com/relocation-quest/atlas/internal/domain/destination"
)

// fuzzyResolveLimit bounds the search used to resolve a free-text country
// reference to one destination. Only the first hit is used; the rest exist so
// ties are resolved by the store's priority ordering, not by accident.
const fuzzyResolveLimit = 5

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get returns the full profile for a destination slug.
func (s *Service) Get(ctx context.Context, slug string) (*domdest.Record, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domain.ErrDestinationNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

// Search finds destinations matching a free-text query.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]domdest.Record, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	if limit <= 0 {
		limit = fuzzyResolveLimit
	}
	return s.repo.Search(ctx, query, limit)
}

// ListAll returns every enabled destination summary. A store failure yields
// an empty listing rather than an error so browsing surfaces stay up.
func (s *Service) ListAll(ctx context.Context) []domdest.Summary {
	out, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Warn("Destination listing unavailable", zap.Error(err))
		return []domdest.Summary{}
	}
	if out == nil {
		out = []domdest.Summary{}
	}
	return out
}

// Compare builds a side-by-side comparison of two destinations. Both must
// exist; a single missing side fails the whole comparison.
func (s *Service) Compare(ctx context.Context, slugA, slugB string) (domdest.Comparison, error) {
	a, err := s.Get(ctx, slugA)
	if err != nil {
		return domdest.Comparison{}, fmt.Errorf("compare %s: %w", slugA, err)
	}
	b, err := s.Get(ctx, slugB)
	if err != nil {
		return domdest.Comparison{}, fmt.Errorf("compare %s: %w", slugB, err)
	}
	return domdest.NewComparison(a, b), nil
}

// Visas resolves a free-text country reference and returns its visa section.
func (s *Service) Visas(ctx context.Context, country string) (domdest.VisaInfo, error) {
	rec, err := s.resolve(ctx, country)
	if err != nil {
		return domdest.VisaInfo{}, err
	}
	return domdest.VisaInfo{
		Country:      rec.CountryName,
		Flag:         rec.Flag,
		Visas:        rec.Visas,
		HeroImageURL: rec.HeroImageURL,
	}, nil
}

// CostOfLiving resolves a free-text country reference and returns its cost
// section together with the job-market figures it is usually read with.
func (s *Service) CostOfLiving(ctx context.Context, country string) (domdest.CostOfLivingInfo, error) {
	rec, err := s.resolve(ctx, country)
	if err != nil {
		return domdest.CostOfLivingInfo{}, err
	}
	return domdest.CostOfLivingInfo{
		Country:   rec.CountryName,
		Flag:      rec.Flag,
		Cities:    rec.CostOfLiving,
		JobMarket: rec.JobMarket,
	}, nil
}

// resolve maps a free-text reference ("Portugal", "portugal", "the algarve")
// to one destination: an exact slug lookup first, then the top fuzzy search
// hit.
func (s *Service) resolve(ctx context.Context, reference string) (*domdest.Record, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, domain.ErrDestinationNotFound
	}

	slug := strings.ReplaceAll(strings.ToLower(reference), " ", "-")
	rec, err := s.repo.GetBySlug(ctx, slug)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, domain.ErrDestinationNotFound) {
		return nil, err
	}

	hits, err := s.repo.Search(ctx, reference, fuzzyResolveLimit)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, domain.ErrDestinationNotFound
	}
	return &hits[0], nil
}
