package article

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/relocation-quest/atlas/internal/domain"
)

// --- KeywordSearch ---

func TestKeywordSearch_TierScoring(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	var captured string
	ms.queryFn = func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
		captured = sql
		return &fakeRows{}, nil
	}

	if _, err := repo.KeywordSearch(ctx, "cyprus visa", 5, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A title hit must outscore an excerpt hit, which must outscore a body
	// hit, and the result order must follow the score.
	title := strings.Index(captured, "WHEN LOWER(title) LIKE '%' || $1 || '%' THEN 3.0")
	excerpt := strings.Index(captured, "WHEN LOWER(excerpt) LIKE '%' || $1 || '%' THEN 2.0")
	body := strings.Index(captured, "WHEN LOWER(content_text) LIKE '%' || $1 || '%' THEN 1.0")
	if title < 0 || excerpt < 0 || body < 0 {
		t.Fatalf("missing tier expression in query:\n%s", captured)
	}
	if !(title < excerpt && excerpt < body) {
		t.Error("tiers are not evaluated title, excerpt, body")
	}
	if !strings.Contains(captured, "ORDER BY score DESC, published_at DESC NULLS LAST") {
		t.Errorf("missing score ordering in query:\n%s", captured)
	}
}

func TestKeywordSearch_LowercasesTerm(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	var gotArgs []any
	ms.queryFn = func(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
		gotArgs = args
		return &fakeRows{}, nil
	}

	if _, err := repo.KeywordSearch(ctx, "Cyprus VISA", 5, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotArgs) != 2 {
		t.Fatalf("expected 2 args without country, got %d", len(gotArgs))
	}
	if gotArgs[0] != "cyprus visa" {
		t.Errorf("term not lowercased: %v", gotArgs[0])
	}
	if gotArgs[1] != 5 {
		t.Errorf("unexpected limit arg: %v", gotArgs[1])
	}
}

func TestKeywordSearch_CountryFilter(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	var (
		captured string
		gotArgs  []any
	)
	ms.queryFn = func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
		captured = sql
		gotArgs = args
		return &fakeRows{}, nil
	}

	if _, err := repo.KeywordSearch(ctx, "visa", 3, "Portugal"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(captured, "AND LOWER(country) = $3") {
		t.Errorf("missing country filter in query:\n%s", captured)
	}
	if len(gotArgs) != 3 {
		t.Fatalf("expected 3 args with country, got %d", len(gotArgs))
	}
	if gotArgs[2] != "portugal" {
		t.Errorf("country not lowercased: %v", gotArgs[2])
	}
}

func TestKeywordSearch_NoCountryOmitsFilter(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	var captured string
	ms.queryFn = func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
		captured = sql
		return &fakeRows{}, nil
	}

	if _, err := repo.KeywordSearch(ctx, "visa", 3, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(captured, "LOWER(country)") {
		t.Errorf("country filter present without a country:\n%s", captured)
	}
}

func TestKeywordSearch_MapsRows(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.queryFn = func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
		return &fakeRows{rows: [][]any{
			{"a1", "Cyprus Digital Nomad Visa Guide", "excerpt", "body",
				"cyprus-nomad-visa", "https://img/1.jpg", "cyprus", "guide", 3.0},
			{"a2", "Island Living", "mentions cyprus", "body",
				"island-living", "", "cyprus", "story", 2.0},
		}}, nil
	}

	got, err := repo.KeywordSearch(ctx, "cyprus", 5, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].ID != "a1" || got[0].Title != "Cyprus Digital Nomad Visa Guide" {
		t.Errorf("unexpected first record: %+v", got[0])
	}
	if got[0].Score != 3.0 || got[1].Score != 2.0 {
		t.Errorf("scores not preserved: %v, %v", got[0].Score, got[1].Score)
	}
	if got[0].Slug != "cyprus-nomad-visa" || got[0].Mode != "guide" {
		t.Errorf("unexpected field mapping: %+v", got[0])
	}
}

func TestKeywordSearch_QueryError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.queryFn = func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
		return nil, errors.New("connection refused")
	}

	if _, err := repo.KeywordSearch(ctx, "visa", 5, ""); err == nil {
		t.Fatal("expected error")
	}
}

// --- GetBySlug ---

func TestGetBySlug(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.queryRowFn = func(_ context.Context, _ string, args ...any) pgx.Row {
		if args[0] != "cyprus-nomad-visa" {
			t.Errorf("unexpected slug arg: %v", args[0])
		}
		return &fakeRow{vals: []any{
			"a1", "Cyprus Digital Nomad Visa Guide", "body", "excerpt",
			"cyprus-nomad-visa", "https://img/1.jpg", "cyprus", "guide", "visas",
		}}
	}

	got, err := repo.GetBySlug(ctx, "cyprus-nomad-visa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "a1" || got.Category != "visas" {
		t.Errorf("unexpected record: %+v", got)
	}
}

func TestGetBySlug_NotFound(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.queryRowFn = func(_ context.Context, _ string, _ ...any) pgx.Row {
		return &fakeRow{err: pgx.ErrNoRows}
	}

	_, err := repo.GetBySlug(ctx, "missing")
	if !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

// --- ListByCountry / ListByMode ---

func TestListByCountry(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	var (
		captured string
		gotArgs  []any
	)
	ms.queryFn = func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
		captured = sql
		gotArgs = args
		return &fakeRows{rows: [][]any{
			{"a1", "Living in Lisbon", "excerpt", "living-in-lisbon", "", "portugal", "guide"},
		}}, nil
	}

	got, err := repo.ListByCountry(ctx, "Portugal", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(captured, "ORDER BY is_featured DESC NULLS LAST") {
		t.Errorf("missing featured-first ordering:\n%s", captured)
	}
	if gotArgs[0] != "portugal" {
		t.Errorf("country not lowercased: %v", gotArgs[0])
	}
	if len(got) != 1 || got[0].Slug != "living-in-lisbon" {
		t.Errorf("unexpected records: %+v", got)
	}
}

func TestListByMode(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	var gotArgs []any
	ms.queryFn = func(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
		gotArgs = args
		return &fakeRows{}, nil
	}

	if _, err := repo.ListByMode(ctx, "nomad", 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotArgs[0] != "nomad" || gotArgs[1] != 4 {
		t.Errorf("unexpected args: %v", gotArgs)
	}
}

// --- DisplayIndex ---

func TestDisplayIndex(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.queryFn = func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
		return &fakeRows{rows: [][]any{
			{"a1", "Cyprus Guide", "cyprus-guide", "https://img/1.jpg"},
			{"a2", "Malta Guide", "malta-guide", ""},
		}}, nil
	}

	got, err := repo.DisplayIndex(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[1].ID != "a2" || got[1].Slug != "malta-guide" {
		t.Errorf("unexpected record: %+v", got[1])
	}
}
