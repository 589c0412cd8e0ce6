package chunk

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

// --- VectorCandidates ---

func TestVectorCandidates_Args(t *testing.T) {
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

	embedding := []float32{0.1, 0.2, 0.3}
	if _, err := repo.VectorCandidates(ctx, embedding, 0.3, 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(captured, "1 - (embedding <=> $1) > $2") {
		t.Errorf("missing similarity floor in query:\n%s", captured)
	}
	if !strings.Contains(captured, "ORDER BY embedding <=> $1") {
		t.Errorf("missing distance ordering in query:\n%s", captured)
	}
	if len(gotArgs) != 3 {
		t.Fatalf("expected 3 args, got %d", len(gotArgs))
	}
	if _, ok := gotArgs[0].(pgvector.Vector); !ok {
		t.Errorf("embedding not passed as pgvector.Vector: %T", gotArgs[0])
	}
	if gotArgs[1] != 0.3 || gotArgs[2] != 20 {
		t.Errorf("unexpected floor/pool args: %v, %v", gotArgs[1], gotArgs[2])
	}
}

func TestVectorCandidates_AssignsDenseRanks(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.queryFn = func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
		return &fakeRows{rows: [][]any{
			candidateRow("c1", "Cyprus visa", 0.91),
			candidateRow("c2", "Cyprus cost of living", 0.85),
			candidateRow("c3", "Cyprus healthcare", 0.85),
		}}, nil
	}

	got, err := repo.VectorCandidates(ctx, []float32{0.1}, 0.3, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	for i := range got {
		if got[i].Rank() != i+1 {
			t.Errorf("candidate %d: rank = %d, want %d", i, got[i].Rank(), i+1)
		}
	}
	if got[0].ID() != "c1" || got[0].Score() != 0.91 {
		t.Errorf("unexpected first candidate: %s score %v", got[0].ID(), got[0].Score())
	}
}

func TestVectorCandidates_QueryError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.queryFn = func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
		return nil, errors.New("connection refused")
	}

	if _, err := repo.VectorCandidates(ctx, []float32{0.1}, 0.3, 20); err == nil {
		t.Fatal("expected error")
	}
}

// --- KeywordCandidates ---

func TestKeywordCandidates_LowercasesTerm(t *testing.T) {
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

	if _, err := repo.KeywordCandidates(ctx, "Cyprus Visa", 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotArgs[0] != "cyprus visa" {
		t.Errorf("term not lowercased: %v", gotArgs[0])
	}
	if gotArgs[1] != 20 {
		t.Errorf("unexpected pool arg: %v", gotArgs[1])
	}
	// Title hits outscore content hits.
	title := strings.Index(captured, "LOWER(title) LIKE '%' || $1 || '%' THEN 3.0")
	content := strings.Index(captured, "LOWER(content) LIKE '%' || $1 || '%' THEN 1.0")
	if title < 0 || content < 0 || title > content {
		t.Errorf("missing or misordered tier expressions:\n%s", captured)
	}
	if !strings.Contains(captured, "ORDER BY score DESC") {
		t.Errorf("missing score ordering in query:\n%s", captured)
	}
}

func TestKeywordCandidates_AssignsDenseRanks(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.queryFn = func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
		return &fakeRows{rows: [][]any{
			candidateRow("c1", "Cyprus visa", 3.0),
			candidateRow("c2", "Island living", 1.0),
		}}, nil
	}

	got, err := repo.KeywordCandidates(ctx, "cyprus", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Rank() != 1 || got[1].Rank() != 2 {
		t.Errorf("unexpected ranks: %d, %d", got[0].Rank(), got[1].Rank())
	}
}

func TestKeywordCandidates_IterationError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.queryFn = func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
		return &fakeRows{err: errors.New("broken stream")}, nil
	}

	if _, err := repo.KeywordCandidates(ctx, "cyprus", 20); err == nil {
		t.Fatal("expected error")
	}
}
