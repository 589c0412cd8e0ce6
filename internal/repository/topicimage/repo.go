// Package topicimage looks up curated topic images by keyword.
package topicimage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/relocation-quest/atlas/internal/domain"
)

// store is the consumer interface over the Postgres pool.
type store interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	WithTimeout(ctx context.Context) (context.Context, context.CancelFunc)
}

// Repo resolves topic keywords against the topic_images table. The stored
// keyword arrays include phonetic variants, so lookups tolerate transcription
// noise without extra normalization here.
type Repo struct {
	pool store
}

// New creates a topic-image repository.
func New(pool store) *Repo {
	return &Repo{pool: pool}
}

// Find tries each word of the query (3+ runes) against topic_keywords and
// returns the first matching image URL.
func (r *Repo) Find(ctx context.Context, query string) (string, error) {
	ctx, cancel := r.pool.WithTimeout(ctx)
	defer cancel()

	for _, word := range strings.Fields(strings.ToLower(query)) {
		if len([]rune(word)) < 3 {
			continue
		}

		var url string
		err := r.pool.QueryRow(ctx, `
			SELECT image_url
			FROM topic_images
			WHERE $1 = ANY(topic_keywords)
			LIMIT 1`, word,
		).Scan(&url)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("find topic image: %w", err)
		}
		return url, nil
	}
	return "", domain.ErrNotFound
}
