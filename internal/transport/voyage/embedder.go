// Package voyage is the embedding provider adapter for the Voyage AI API.
package voyage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/relocation-quest/atlas/internal/domain"
	"github.com/relocation-quest/atlas/internal/metrics"
)

const defaultBaseURL = "https://api.voyageai.com"

// Embedder calls POST /v1/embeddings with the query-mode input hint.
// The underlying HTTP client is created once and reused for the process
// lifetime; connection pooling lives there, not in callers.
type Embedder struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     *zap.Logger
}

// Config holds the provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewEmbedder creates a Voyage embedding provider.
func NewEmbedder(cfg *Config) *Embedder {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Embedder{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		logger:     cfg.Logger,
	}
}

type embeddingRequest struct {
	Model     string `json:"model"`
	Input     string `json:"input"`
	InputType string `json:"input_type"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// Embed implements domain.Embedder. Any transport or provider failure is
// wrapped with domain.ErrEmbeddingUnavailable so search can degrade to
// keyword-only retrieval.
func (e *Embedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	body, err := json.Marshal(embeddingRequest{
		Model:     e.model,
		Input:     text,
		InputType: "query",
	})
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("marshal embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/embeddings", bytes.NewReader(body))
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("build embedding request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := e.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues("voyage", e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues("voyage", e.model, "network").Inc()
		return domain.EmbeddingResult{}, fmt.Errorf("embedding request failed: %w", domain.ErrEmbeddingUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.EmbeddingRequestsTotal.WithLabelValues("voyage", e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues("voyage", e.model, "api_error").Inc()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		e.logger.Warn("Embedding API returned error status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", detail),
		)
		return domain.EmbeddingResult{}, fmt.Errorf(
			"embedding API status %d: %w", resp.StatusCode, domain.ErrEmbeddingUnavailable)
	}

	var parsed embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues("voyage", e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues("voyage", e.model, "decode").Inc()
		return domain.EmbeddingResult{}, fmt.Errorf("decode embedding response: %w", domain.ErrEmbeddingUnavailable)
	}
	if len(parsed.Data) == 0 {
		metrics.EmbeddingRequestsTotal.WithLabelValues("voyage", e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues("voyage", e.model, "empty_response").Inc()
		return domain.EmbeddingResult{}, fmt.Errorf("empty embedding response: %w", domain.ErrEmbeddingUnavailable)
	}

	metrics.EmbeddingRequestsTotal.WithLabelValues("voyage", e.model, "success").Inc()
	metrics.EmbeddingRequestDuration.WithLabelValues("voyage", e.model).Observe(duration.Seconds())
	if parsed.Usage.TotalTokens > 0 {
		metrics.EmbeddingTokensTotal.WithLabelValues("voyage", e.model, "total").
			Add(float64(parsed.Usage.TotalTokens))
	}

	return domain.EmbeddingResult{
		Embedding:   parsed.Data[0].Embedding,
		TotalTokens: parsed.Usage.TotalTokens,
	}, nil
}

// HealthCheck issues a minimal embedding request to verify availability.
func (e *Embedder) HealthCheck(ctx context.Context) error {
	if _, err := e.Embed(ctx, "ping"); err != nil {
		return fmt.Errorf("embedding health check: %w", err)
	}
	return nil
}
