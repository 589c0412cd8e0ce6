// Package article is the relational store adapter for article rows.
package article

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/relocation-quest/atlas/internal/domain"
	domart "github.com/relocation-quest/atlas/internal/domain/article"
)

// store is the consumer interface over the Postgres pool.
type store interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	WithTimeout(ctx context.Context) (context.Context, context.CancelFunc)
}

// Repo implements article lookups and keyword search over the articles table.
type Repo struct {
	pool store
}

// New creates an article repository.
func New(pool store) *Repo {
	return &Repo{pool: pool}
}

const keywordSelect = `
	SELECT
		id::text,
		title,
		COALESCE(excerpt, ''),
		COALESCE(content_text, ''),
		COALESCE(slug, ''),
		COALESCE(hero_image_url, ''),
		COALESCE(country, ''),
		COALESCE(article_mode, ''),
		CASE
			WHEN LOWER(title) LIKE '%' || $1 || '%' THEN 3.0
			WHEN LOWER(excerpt) LIKE '%' || $1 || '%' THEN 2.0
			WHEN LOWER(content_text) LIKE '%' || $1 || '%' THEN 1.0
			ELSE 0.0
		END AS score
	FROM articles
	WHERE (
		LOWER(title) LIKE '%' || $1 || '%'
		OR LOWER(excerpt) LIKE '%' || $1 || '%'
		OR LOWER(content_text) LIKE '%' || $1 || '%'
	)`

// KeywordSearch scores rows by substring containment: 3.0 for a title hit,
// 2.0 excerpt, 1.0 body; the highest applicable tier wins and non-matching
// rows are excluded by the predicate. Ties are broken by descending publish
// date with unpublished rows last. country, when non-empty, is an exact
// case-insensitive filter applied before ranking.
func (r *Repo) KeywordSearch(ctx context.Context, term string, limit int, country string) ([]domart.Record, error) {
	ctx, cancel := r.pool.WithTimeout(ctx)
	defer cancel()

	term = strings.ToLower(term)

	var (
		rows pgx.Rows
		err  error
	)
	if country != "" {
		q := keywordSelect + `
	AND LOWER(country) = $3
	ORDER BY score DESC, published_at DESC NULLS LAST
	LIMIT $2`
		rows, err = r.pool.Query(ctx, q, term, limit, strings.ToLower(country))
	} else {
		q := keywordSelect + `
	ORDER BY score DESC, published_at DESC NULLS LAST
	LIMIT $2`
		rows, err = r.pool.Query(ctx, q, term, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}
	defer rows.Close()

	return scanSearchRows(rows)
}

func scanSearchRows(rows pgx.Rows) ([]domart.Record, error) {
	var out []domart.Record
	for rows.Next() {
		var a domart.Record
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Excerpt, &a.Content,
			&a.Slug, &a.HeroImageURL, &a.Country, &a.Mode, &a.Score,
		); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}
	return out, nil
}

// GetBySlug returns the full article for detailed display.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domart.Record, error) {
	ctx, cancel := r.pool.WithTimeout(ctx)
	defer cancel()

	var a domart.Record
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, title, COALESCE(content_text, ''), COALESCE(excerpt, ''),
		       slug, COALESCE(hero_image_url, ''), COALESCE(country, ''),
		       COALESCE(article_mode, ''), COALESCE(category, '')
		FROM articles
		WHERE slug = $1`, slug,
	).Scan(
		&a.ID, &a.Title, &a.Content, &a.Excerpt,
		&a.Slug, &a.HeroImageURL, &a.Country, &a.Mode, &a.Category,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("get article %s: %w", slug, err)
	}
	return &a, nil
}

// ListByCountry returns articles for a destination, featured first.
func (r *Repo) ListByCountry(ctx context.Context, country string, limit int) ([]domart.Record, error) {
	ctx, cancel := r.pool.WithTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT id::text, title, COALESCE(excerpt, ''), COALESCE(slug, ''),
		       COALESCE(hero_image_url, ''), COALESCE(country, ''), COALESCE(article_mode, '')
		FROM articles
		WHERE LOWER(country) = $1
		ORDER BY is_featured DESC NULLS LAST, published_at DESC NULLS LAST
		LIMIT $2`, strings.ToLower(country), limit)
	if err != nil {
		return nil, fmt.Errorf("list by country: %w", err)
	}
	defer rows.Close()

	return scanListRows(rows)
}

// ListByMode returns articles of one mode (guide, story, nomad).
func (r *Repo) ListByMode(ctx context.Context, mode string, limit int) ([]domart.Record, error) {
	ctx, cancel := r.pool.WithTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT id::text, title, COALESCE(excerpt, ''), COALESCE(slug, ''),
		       COALESCE(hero_image_url, ''), COALESCE(country, ''), COALESCE(article_mode, '')
		FROM articles
		WHERE article_mode = $1
		ORDER BY is_featured DESC NULLS LAST, published_at DESC NULLS LAST
		LIMIT $2`, mode, limit)
	if err != nil {
		return nil, fmt.Errorf("list by mode: %w", err)
	}
	defer rows.Close()

	return scanListRows(rows)
}

// DisplayIndex returns the display metadata for every article: id, title,
// slug, and hero image. Used by the result assembler's title-match cascade.
func (r *Repo) DisplayIndex(ctx context.Context) ([]domart.Record, error) {
	ctx, cancel := r.pool.WithTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT id::text, title, COALESCE(slug, ''), COALESCE(hero_image_url, '')
		FROM articles`)
	if err != nil {
		return nil, fmt.Errorf("display index: %w", err)
	}
	defer rows.Close()

	var out []domart.Record
	for rows.Next() {
		var a domart.Record
		if err := rows.Scan(&a.ID, &a.Title, &a.Slug, &a.HeroImageURL); err != nil {
			return nil, fmt.Errorf("scan display record: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate display records: %w", err)
	}
	return out, nil
}

func scanListRows(rows pgx.Rows) ([]domart.Record, error) {
	var out []domart.Record
	for rows.Next() {
		var a domart.Record
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Excerpt, &a.Slug,
			&a.HeroImageURL, &a.Country, &a.Mode,
		); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}
	return out, nil
}
