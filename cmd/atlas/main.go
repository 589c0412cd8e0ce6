package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/relocation-quest/atlas/internal/config"
	"github.com/relocation-quest/atlas/internal/db/postgres"
	dbRedis "github.com/relocation-quest/atlas/internal/db/redis"
	"github.com/relocation-quest/atlas/internal/domain"
	logpkg "github.com/relocation-quest/atlas/internal/logger"
	"github.com/relocation-quest/atlas/internal/metrics"
	"github.com/relocation-quest/atlas/internal/query"
	articlerepo "github.com/relocation-quest/atlas/internal/repository/article"
	chunkrepo "github.com/relocation-quest/atlas/internal/repository/chunk"
	destinationrepo "github.com/relocation-quest/atlas/internal/repository/destination"
	"github.com/relocation-quest/atlas/internal/repository/embcache"
	profilerepo "github.com/relocation-quest/atlas/internal/repository/profile"
	topicimagerepo "github.com/relocation-quest/atlas/internal/repository/topicimage"
	chiTransport "github.com/relocation-quest/atlas/internal/transport/chi"
	openaiEmb "github.com/relocation-quest/atlas/internal/transport/openai"
	voyageEmb "github.com/relocation-quest/atlas/internal/transport/voyage"
	destinationuc "github.com/relocation-quest/atlas/internal/usecase/destination"
	healthuc "github.com/relocation-quest/atlas/internal/usecase/health"
	researchuc "github.com/relocation-quest/atlas/internal/usecase/research"
	searchuc "github.com/relocation-quest/atlas/internal/usecase/search"
	"github.com/relocation-quest/atlas/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting atlas API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("embedding_provider", cfg.Embedding.Provider),
	)

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.Config{
		URL:          cfg.Database.URL,
		MinConns:     int32(cfg.Database.MinConns),
		MaxConns:     int32(cfg.Database.MaxConns),
		QueryTimeout: time.Duration(cfg.Database.QueryTimeoutSec) * time.Second,
	})
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Optional embedding cache
	var cache *dbRedis.Store
	if cfg.Cache.Enabled {
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer cache.Close()
		logger.Info("Embedding cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	embedder := buildEmbedder(cfg.Embedding, cache, time.Duration(cfg.Cache.TTLHours)*time.Hour, logger)
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
	)

	// Repositories
	articleRepo := articlerepo.New(pool)
	chunkRepo := chunkrepo.New(pool)
	destinationRepo := destinationrepo.New(pool)
	topicImageRepo := topicimagerepo.New(pool)
	profileRepo := profilerepo.New(pool)

	// Use case services
	extractor := query.NewExtractor(query.NewDestinationMatcher())
	searchSvc := searchuc.NewService(chunkRepo, articleRepo, embedder, extractor, cfg.Search.DefaultLimit, logger)
	destinationSvc := destinationuc.NewService(destinationRepo, logger)
	researchSvc := researchuc.NewService(searchSvc, topicImageRepo, logger)

	var cachePinger healthuc.CachePinger
	if cache != nil {
		cachePinger = cache
	}
	healthSvc := healthuc.New(pool, cachePinger, newEmbeddingHealthChecker(embedder))

	server := chiTransport.NewServer(
		searchSvc, destinationSvc, researchSvc, articleRepo, profileRepo,
		healthSvc, cfg.Search.MaxLimit, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the embedder chain: provider -> cache.
func buildEmbedder(
	cfg config.EmbeddingConfig,
	cache *dbRedis.Store,
	cacheTTL time.Duration,
	logger *zap.Logger,
) domain.Embedder {
	var base domain.Embedder
	switch cfg.Provider {
	case "openai":
		base = openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Logger:  logger,
		})
	default:
		base = voyageEmb.NewEmbedder(&voyageEmb.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
			Logger:  logger,
		})
	}

	if cache == nil {
		return base
	}
	return embcache.New(base, cache, cacheTTL, metrics.EmbeddingCacheTotal, logger)
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
