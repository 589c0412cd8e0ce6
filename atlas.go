// Package atlas embeds the relocation advisory engine as a library: hybrid
// article retrieval, destination profiles, and research surfaces over a
// Postgres knowledge base.
package atlas

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/relocation-quest/atlas/internal/db/postgres"
	dbRedis "github.com/relocation-quest/atlas/internal/db/redis"
	"github.com/relocation-quest/atlas/internal/domain"
	"github.com/relocation-quest/atlas/internal/metrics"
	"github.com/relocation-quest/atlas/internal/query"
	articlerepo "github.com/relocation-quest/atlas/internal/repository/article"
	chunkrepo "github.com/relocation-quest/atlas/internal/repository/chunk"
	destinationrepo "github.com/relocation-quest/atlas/internal/repository/destination"
	"github.com/relocation-quest/atlas/internal/repository/embcache"
	topicimagerepo "github.com/relocation-quest/atlas/internal/repository/topicimage"
	voyageEmb "github.com/relocation-quest/atlas/internal/transport/voyage"
	destinationuc "github.com/relocation-quest/atlas/internal/usecase/destination"
	researchuc "github.com/relocation-quest/atlas/internal/usecase/research"
	searchuc "github.com/relocation-quest/atlas/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// EmbeddingResult holds a query embedding with provider token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder vectorizes query text. Implement it to plug a custom provider.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

type clientConfig struct {
	databaseURL  string
	minConns     int
	maxConns     int
	queryTimeout time.Duration

	voyageAPIKey  string
	voyageBaseURL string
	voyageModel   string

	embedder Embedder

	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration

	searchLimit int

	logger *zap.Logger
}

// Option configures the Client.
type Option func(*clientConfig)

// WithDatabase sets the Postgres connection URL (required).
func WithDatabase(url string) Option {
	return func(c *clientConfig) { c.databaseURL = url }
}

// WithPoolLimits bounds the connection pool.
func WithPoolLimits(minConns, maxConns int) Option {
	return func(c *clientConfig) {
		c.minConns = minConns
		c.maxConns = maxConns
	}
}

// WithQueryTimeout bounds every statement issued through the pool.
func WithQueryTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.queryTimeout = d }
}

// WithVoyage configures the Voyage AI embedding provider.
func WithVoyage(apiKey, model string) Option {
	return func(c *clientConfig) {
		c.voyageAPIKey = apiKey
		c.voyageModel = model
	}
}

// WithVoyageBaseURL overrides the Voyage API endpoint.
func WithVoyageBaseURL(url string) Option {
	return func(c *clientConfig) { c.voyageBaseURL = url }
}

// WithEmbedder plugs a custom embedding provider. Takes precedence over
// WithVoyage.
func WithEmbedder(e Embedder) Option {
	return func(c *clientConfig) { c.embedder = e }
}

// WithSearchLimit sets the page size used when Query is called with no
// limit. Defaults to the engine's built-in page size.
func WithSearchLimit(limit int) Option {
	return func(c *clientConfig) { c.searchLimit = limit }
}

// WithCache enables the Redis embedding cache.
func WithCache(addrs []string, password string, ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.cacheAddrs = addrs
		c.cachePassword = password
		c.cacheTTL = ttl
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}

// Client is the atlas SDK entry point.
type Client struct {
	pool  *postgres.Pool
	cache *dbRedis.Store

	searchSvc      *searchuc.Service
	destinationSvc *destinationuc.Service
	researchSvc    *researchuc.Service
	articleRepo    *articlerepo.Repo
}

// New creates an atlas Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		cacheTTL: 24 * time.Hour,
	}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.databaseURL == "" {
		return nil, errors.New("atlas: database URL required (use WithDatabase)")
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, postgres.Config{
		URL:          cfg.databaseURL,
		MinConns:     int32(cfg.minConns),
		MaxConns:     int32(cfg.maxConns),
		QueryTimeout: cfg.queryTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("atlas: create pool: %w", err)
	}
	if err := pool.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		pool.Close()
		return nil, fmt.Errorf("atlas: database not ready: %w", err)
	}

	var cache *dbRedis.Store
	if len(cfg.cacheAddrs) > 0 {
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
		})
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("atlas: create cache store: %w", err)
		}
	}

	return wireClient(pool, cache, cfg), nil
}

func wireClient(pool *postgres.Pool, cache *dbRedis.Store, cfg *clientConfig) *Client {
	embedder := buildEmbedder(cfg, cache)

	articleRepo := articlerepo.New(pool)
	chunkRepo := chunkrepo.New(pool)
	destinationRepo := destinationrepo.New(pool)
	topicImageRepo := topicimagerepo.New(pool)

	extractor := query.NewExtractor(query.NewDestinationMatcher())
	searchSvc := searchuc.NewService(chunkRepo, articleRepo, embedder, extractor, cfg.searchLimit, cfg.logger)
	destinationSvc := destinationuc.NewService(destinationRepo, cfg.logger)
	researchSvc := researchuc.NewService(searchSvc, topicImageRepo, cfg.logger)

	return &Client{
		pool:           pool,
		cache:          cache,
		searchSvc:      searchSvc,
		destinationSvc: destinationSvc,
		researchSvc:    researchSvc,
		articleRepo:    articleRepo,
	}
}

func buildEmbedder(cfg *clientConfig, cache *dbRedis.Store) domain.Embedder {
	var base domain.Embedder
	switch {
	case cfg.embedder != nil:
		base = &embedderAdapter{inner: cfg.embedder}
	case cfg.voyageAPIKey != "":
		base = voyageEmb.NewEmbedder(&voyageEmb.Config{
			APIKey:  cfg.voyageAPIKey,
			BaseURL: cfg.voyageBaseURL,
			Model:   cfg.voyageModel,
			Logger:  cfg.logger,
		})
	default:
		// Keyword-only mode: every search degrades to the keyword path.
		base = noopEmbedder{}
	}

	if cache == nil {
		return base
	}
	return embcache.New(base, cache, cfg.cacheTTL, metrics.EmbeddingCacheTotal, cfg.logger)
}

// Close releases all resources.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
	if c.pool != nil {
		c.pool.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search returns the hybrid retrieval service.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.searchSvc, articles: c.articleRepo}
}

// Destinations returns the destination profile service.
func (c *Client) Destinations() *DestinationService {
	return &DestinationService{svc: c.destinationSvc}
}

// Research returns the research surface service.
func (c *Client) Research() *ResearchService {
	return &ResearchService{svc: c.researchSvc}
}

// embedderAdapter wraps public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		// Availability failures trigger the keyword fallback instead of
		// failing the search.
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", errors.Join(domain.ErrEmbeddingUnavailable, err))
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

// noopEmbedder reports the provider unavailable, forcing keyword-only search.
type noopEmbedder struct{}

func (noopEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{}, domain.ErrEmbeddingUnavailable
}
