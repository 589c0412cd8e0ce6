// Package chunk is the relational store adapter for the knowledge_chunks table.
package chunk

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	domsearch "github.com/relocation-quest/atlas/internal/domain/search"
)

// store is the consumer interface over the Postgres pool.
type store interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	WithTimeout(ctx context.Context) (context.Context, context.CancelFunc)
}

// Repo produces the per-signal candidate sets for hybrid search.
type Repo struct {
	pool store
}

// New creates a knowledge-chunk repository.
func New(pool store) *Repo {
	return &Repo{pool: pool}
}

// VectorCandidates returns chunks with cosine similarity above floor, most
// similar first, capped to pool. Ranks are dense and 1-based.
func (r *Repo) VectorCandidates(ctx context.Context, embedding []float32, floor float64, pool int) ([]domsearch.Candidate, error) {
	ctx, cancel := r.pool.WithTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT id::text, COALESCE(title, ''), COALESCE(content, ''),
		       1 - (embedding <=> $1) AS similarity
		FROM knowledge_chunks
		WHERE 1 - (embedding <=> $1) > $2
		ORDER BY embedding <=> $1
		LIMIT $3`, pgvector.NewVector(embedding), floor, pool)
	if err != nil {
		return nil, fmt.Errorf("vector candidates: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

// KeywordCandidates returns chunks whose title or content contains the term,
// title hits first. This layer only distinguishes title from content; the
// finer 3/2/1 article tiers belong to the degraded-mode article search.
func (r *Repo) KeywordCandidates(ctx context.Context, term string, pool int) ([]domsearch.Candidate, error) {
	ctx, cancel := r.pool.WithTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT id::text, COALESCE(title, ''), COALESCE(content, ''),
		       CASE
		           WHEN LOWER(title) LIKE '%' || $1 || '%' THEN 3.0
		           WHEN LOWER(content) LIKE '%' || $1 || '%' THEN 1.0
		           ELSE 0.0
		       END AS score
		FROM knowledge_chunks
		WHERE LOWER(title) LIKE '%' || $1 || '%'
		   OR LOWER(content) LIKE '%' || $1 || '%'
		ORDER BY score DESC
		LIMIT $2`, strings.ToLower(term), pool)
	if err != nil {
		return nil, fmt.Errorf("keyword candidates: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func scanCandidates(rows pgx.Rows) ([]domsearch.Candidate, error) {
	var out []domsearch.Candidate
	for rows.Next() {
		var (
			id, title, content string
			score              float64
		)
		if err := rows.Scan(&id, &title, &content, &score); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, domsearch.NewCandidate(id, title, content, 0, score))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return domsearch.Rank(out), nil
}
