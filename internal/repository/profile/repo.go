// Package profile resolves the user's preferred name for personalization.
package profile

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

// Repo reads user naming data.
type Repo struct {
	pool store
}

// New creates a profile repository.
func New(pool store) *Repo {
	return &Repo{pool: pool}
}

// PreferredName checks user_data.preferred_name first, then the users table,
// falling back to the first token of the full name.
func (r *Repo) PreferredName(ctx context.Context, userID string) (string, error) {
	ctx, cancel := r.pool.WithTimeout(ctx)
	defer cancel()

	var preferred *string
	err := r.pool.QueryRow(ctx, `
		SELECT preferred_name FROM user_data WHERE user_id = $1`, userID,
	).Scan(&preferred)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("preferred name from user_data: %w", err)
	}
	if preferred != nil && *preferred != "" {
		return *preferred, nil
	}

	var name *string
	preferred = nil
	err = r.pool.QueryRow(ctx, `
		SELECT name, preferred_name FROM users WHERE id = $1`, userID,
	).Scan(&name, &preferred)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("preferred name from users: %w", err)
	}
	if preferred != nil && *preferred != "" {
		return *preferred, nil
	}
	if name != nil {
		if first, _, _ := strings.Cut(strings.TrimSpace(*name), " "); first != "" {
			return first, nil
		}
	}
	return "", domain.ErrNotFound
}
