package profile

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
}

func (m *mockStore) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.queryRowFn != nil {
		return m.queryRowFn(ctx, sql, args...)
	}
	return &fakeRow{err: pgx.ErrNoRows}
}

func (m *mockStore) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

// fakeRow replays nullable name columns through the pgx.Row interface.
// A nil entry scans as SQL NULL.
type fakeRow struct {
	vals []*string
	err  error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.vals) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(r.vals))
	}
	for i, d := range dest {
		*d.(**string) = r.vals[i]
	}
	return nil
}

func ptr(s string) *string { return &s }
