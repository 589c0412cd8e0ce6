// Package destination is the relational store adapter for destination profiles.
package destination

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/relocation-quest/atlas/internal/domain"
	domdest "github.com/relocation-quest/atlas/internal/domain/destination"
)

// store is the consumer interface over the Postgres pool.
type store interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	WithTimeout(ctx context.Context) (context.Context, context.CancelFunc)
}

// Repo implements destination lookups. Only enabled records are visible.
type Repo struct {
	pool store
}

// New creates a destination repository.
func New(pool store) *Repo {
	return &Repo{pool: pool}
}

// GetBySlug returns the full profile for an enabled destination.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domdest.Record, error) {
	ctx, cancel := r.pool.WithTimeout(ctx)
	defer cancel()

	var d domdest.Record
	err := r.pool.QueryRow(ctx, `
		SELECT
			slug, country_name, COALESCE(flag, ''), COALESCE(region, ''),
			COALESCE(language, ''), COALESCE(hero_title, ''),
			COALESCE(hero_subtitle, ''), COALESCE(hero_image_url, ''),
			quick_facts, highlights, visas, cost_of_living, job_market, faqs
		FROM destinations
		WHERE slug = $1 AND enabled = true`, strings.ToLower(slug),
	).Scan(
		&d.Slug, &d.CountryName, &d.Flag, &d.Region,
		&d.Language, &d.HeroTitle, &d.HeroSubtitle, &d.HeroImageURL,
		&d.QuickFacts, &d.Highlights, &d.Visas, &d.CostOfLiving, &d.JobMarket, &d.FAQs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDestinationNotFound
		}
		return nil, fmt.Errorf("get destination %s: %w", slug, err)
	}
	return &d, nil
}

// Search returns enabled destinations whose country name, region, or subtitle
// contains the query, highest priority first then name.
func (r *Repo) Search(ctx context.Context, query string, limit int) ([]domdest.Record, error) {
	ctx, cancel := r.pool.WithTimeout(ctx)
	defer cancel()

	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := r.pool.Query(ctx, `
		SELECT
			slug, country_name, COALESCE(flag, ''), COALESCE(region, ''),
			COALESCE(language, ''), COALESCE(hero_subtitle, ''),
			COALESCE(hero_image_url, ''),
			quick_facts, visas, cost_of_living
		FROM destinations
		WHERE enabled = true
		AND (
			LOWER(country_name) LIKE $1
			OR LOWER(region) LIKE $1
			OR LOWER(hero_subtitle) LIKE $1
		)
		ORDER BY priority DESC, country_name ASC
		LIMIT $2`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search destinations: %w", err)
	}
	defer rows.Close()

	var out []domdest.Record
	for rows.Next() {
		var d domdest.Record
		if err := rows.Scan(
			&d.Slug, &d.CountryName, &d.Flag, &d.Region,
			&d.Language, &d.HeroSubtitle, &d.HeroImageURL,
			&d.QuickFacts, &d.Visas, &d.CostOfLiving,
		); err != nil {
			return nil, fmt.Errorf("scan destination: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate destinations: %w", err)
	}
	return out, nil
}

// ListAll returns every enabled destination summary, featured first, then
// priority, then name.
func (r *Repo) ListAll(ctx context.Context) ([]domdest.Summary, error) {
	ctx, cancel := r.pool.WithTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT slug, country_name, COALESCE(flag, ''), COALESCE(region, ''),
		       COALESCE(hero_subtitle, ''), COALESCE(featured, false), COALESCE(priority, 0)
		FROM destinations
		WHERE enabled = true
		ORDER BY featured DESC, priority DESC, country_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	defer rows.Close()

	var out []domdest.Summary
	for rows.Next() {
		var s domdest.Summary
		if err := rows.Scan(
			&s.Slug, &s.CountryName, &s.Flag, &s.Region,
			&s.HeroSubtitle, &s.Featured, &s.Priority,
		); err != nil {
			return nil, fmt.Errorf("scan destination summary: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate destination summaries: %w", err)
	}
	return out, nil
}
