package atlas

import (
	"context"
	"fmt"

	domart "github.com/relocation-quest/atlas/internal/domain/article"
	articlerepo "github.com/relocation-quest/atlas/internal/repository/article"
	searchuc "github.com/relocation-quest/atlas/internal/usecase/search"
)

// SearchService answers relocation queries and serves direct article reads.
type SearchService struct {
	svc      *searchuc.Service
	articles *articlerepo.Repo
}

// Article is a display-ready article.
type Article struct {
	ID           string
	Title        string
	Content      string
	Excerpt      string
	Slug         string
	HeroImageURL string
	Country      string
	Mode         string
	Category     string
	Score        float64
}

// SearchResponse holds ranked articles plus the normalized query actually
// searched. Degraded reports that the keyword fallback served the request.
type SearchResponse struct {
	Articles        []Article
	NormalizedQuery string
	Degraded        bool
}

// Query runs the hybrid retrieval pipeline. limit <= 0 selects the default
// page size.
func (s *SearchService) Query(ctx context.Context, query string, limit int) (SearchResponse, error) {
	res, err := s.svc.Search(ctx, query, limit)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("query: %w", err)
	}
	return SearchResponse{
		Articles:        fromArticles(res.Articles),
		NormalizedQuery: res.NormalizedQuery,
		Degraded:        res.Degraded,
	}, nil
}

// Article fetches one article by slug.
func (s *SearchService) Article(ctx context.Context, slug string) (Article, error) {
	rec, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return Article{}, fmt.Errorf("article: %w", err)
	}
	return fromArticle(*rec), nil
}

// ByCountry lists articles for a country, featured first.
func (s *SearchService) ByCountry(ctx context.Context, country string, limit int) ([]Article, error) {
	recs, err := s.articles.ListByCountry(ctx, country, limit)
	if err != nil {
		return nil, fmt.Errorf("by country: %w", err)
	}
	return fromArticles(recs), nil
}

// ByMode lists articles for a relocation mode, featured first.
func (s *SearchService) ByMode(ctx context.Context, mode string, limit int) ([]Article, error) {
	recs, err := s.articles.ListByMode(ctx, mode, limit)
	if err != nil {
		return nil, fmt.Errorf("by mode: %w", err)
	}
	return fromArticles(recs), nil
}

func fromArticle(r domart.Record) Article {
	return Article{
		ID:           r.ID,
		Title:        r.Title,
		Content:      r.Content,
		Excerpt:      r.Excerpt,
		Slug:         r.Slug,
		HeroImageURL: r.HeroImageURL,
		Country:      r.Country,
		Mode:         r.Mode,
		Category:     r.Category,
		Score:        r.Score,
	}
}

func fromArticles(recs []domart.Record) []Article {
	out := make([]Article, len(recs))
	for i, r := range recs {
		out[i] = fromArticle(r)
	}
	return out
}
