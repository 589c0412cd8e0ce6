package search

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/relocation-quest/atlas/internal/domain"
	domart "github.com/relocation-quest/atlas/internal/domain/article"
	domsearch "github.com/relocation-quest/atlas/internal/domain/search"
	"github.com/relocation-quest/atlas/internal/metrics"
	"github.com/relocation-quest/atlas/internal/query"
)

const (
	// similarityFloor drops vector candidates whose cosine similarity is
	// too low to be topically related to the query.
	similarityFloor = 0.3

	// vectorPool and keywordPool size the per-signal candidate pools
	// handed to fusion. Pools larger than the final limit let a result
	// ranked poorly by one signal still win on combined evidence.
	vectorPool  = 50
	keywordPool = 50

	// fallbackLimit is the page size when neither the caller nor the
	// configuration supplies one.
	fallbackLimit = 5
)

// Service answers relocation queries with hybrid retrieval: vector and
// keyword candidates fetched concurrently and fused with reciprocal rank
// fusion. When the embedding provider or the chunk store is unavailable the
// service degrades to tiered keyword search over full articles.
type Service struct {
	chunks       ChunkRepository
	articles     ArticleRepository
	embedder     domain.Embedder
	extractor    *query.Extractor
	defaultLimit int
	logger       *zap.Logger
}

// NewService creates the hybrid search service. defaultLimit is the page
// size used when a caller passes no limit; zero or negative selects the
// built-in default.
func NewService(chunks ChunkRepository, articles ArticleRepository, embedder domain.Embedder, extractor *query.Extractor, defaultLimit int, logger *zap.Logger) *Service {
	if defaultLimit <= 0 {
		defaultLimit = fallbackLimit
	}
	return &Service{
		chunks:       chunks,
		articles:     articles,
		embedder:     embedder,
		extractor:    extractor,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

// Result carries the ranked articles plus the normalized form of the query
// actually searched, so callers can echo what was understood.
type Result struct {
	Articles        []domart.Record `json:"articles"`
	NormalizedQuery string          `json:"normalized_query"`
	Degraded        bool            `json:"degraded"`
}

// Search runs the hybrid pipeline for a raw user query. limit <= 0 selects
// the default page size.
func (s *Service) Search(ctx context.Context, rawQuery string, limit int) (Result, error) {
	normalized := query.Normalize(rawQuery)
	if normalized == "" {
		return Result{}, domain.ErrEmptyQuery
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}

	// Extraction runs on the normalized form so phonetic corrections reach
	// the keyword signal, not just the embedding input.
	terms := s.extractor.Terms(normalized)

	embedded, err := s.embedder.Embed(ctx, normalized)
	if err != nil {
		if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
			return Result{}, fmt.Errorf("embed query: %w", err)
		}
		metrics.SearchFallbacksTotal.WithLabelValues("embedding").Inc()
		s.logger.Warn("Embedding unavailable, degrading to keyword search",
			zap.String("query", normalized),
			zap.Error(err))
		return s.keywordOnly(ctx, normalized, terms, limit)
	}

	var vector, keyword []domsearch.Candidate
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		vector, err = s.chunks.VectorCandidates(gctx, embedded.Embedding, similarityFloor, vectorPool)
		return err
	})
	g.Go(func() error {
		var err error
		keyword, err = s.chunks.KeywordCandidates(gctx, terms, keywordPool)
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.SearchFallbacksTotal.WithLabelValues("vector_store").Inc()
		s.logger.Warn("Chunk store unavailable, degrading to keyword search",
			zap.String("query", normalized),
			zap.Error(err))
		return s.keywordOnly(ctx, normalized, terms, limit)
	}

	fused := fuseRRF(vector, keyword, limit)
	articles := s.enrich(ctx, fused)

	s.logger.Debug("Hybrid search complete",
		zap.String("query", normalized),
		zap.Int("vector_candidates", len(vector)),
		zap.Int("keyword_candidates", len(keyword)),
		zap.Int("results", len(articles)))

	return Result{Articles: articles, NormalizedQuery: normalized}, nil
}

// keywordOnly is the degraded path: tiered keyword search over full articles,
// preserving the repository's ordering exactly.
func (s *Service) keywordOnly(ctx context.Context, normalized, terms string, limit int) (Result, error) {
	records, err := s.articles.KeywordSearch(ctx, terms, limit, "")
	if err != nil {
		return Result{}, fmt.Errorf("keyword search: %w", err)
	}
	for i := range records {
		records[i].Content = records[i].Preview(previewLen)
	}
	return Result{Articles: records, NormalizedQuery: normalized, Degraded: true}, nil
}
