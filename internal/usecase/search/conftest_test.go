package search

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/relocation-quest/atlas/internal/domain"
	domart "github.com/relocation-quest/atlas/internal/domain/article"
	domsearch "github.com/relocation-quest/atlas/internal/domain/search"
	"github.com/relocation-quest/atlas/internal/query"
)

type mockChunks struct {
	vector     []domsearch.Candidate
	vectorErr  error
	keyword    []domsearch.Candidate
	keywordErr error

	lastTerm      string
	lastFloor     float64
	vectorCalls   int
	keywordCalls  int
}

func (m *mockChunks) VectorCandidates(_ context.Context, _ []float32, floor float64, _ int) ([]domsearch.Candidate, error) {
	m.vectorCalls++
	m.lastFloor = floor
	return m.vector, m.vectorErr
}

func (m *mockChunks) KeywordCandidates(_ context.Context, term string, _ int) ([]domsearch.Candidate, error) {
	m.keywordCalls++
	m.lastTerm = term
	return m.keyword, m.keywordErr
}

type mockArticles struct {
	searchResults []domart.Record
	searchErr     error
	display       []domart.Record
	displayErr    error

	lastTerm    string
	lastLimit   int
	searchCalls int
}

func (m *mockArticles) KeywordSearch(_ context.Context, term string, limit int, _ string) ([]domart.Record, error) {
	m.searchCalls++
	m.lastTerm = term
	m.lastLimit = limit
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	out := make([]domart.Record, len(m.searchResults))
	copy(out, m.searchResults)
	return out, nil
}

func (m *mockArticles) DisplayIndex(_ context.Context) ([]domart.Record, error) {
	return m.display, m.displayErr
}

type fakeEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
}

func (e *fakeEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	e.calls++
	return e.result, e.err
}

func newTestService(t *testing.T, chunks *mockChunks, articles *mockArticles, embedder *fakeEmbedder) *Service {
	t.Helper()
	extractor := query.NewExtractor(query.NewDestinationMatcher())
	return NewService(chunks, articles, embedder, extractor, 0, zap.NewNop())
}

func chunkCandidate(id string, rank int) domsearch.Candidate {
	return domsearch.NewCandidate(id, "Title "+id, "Content "+id, rank, 1.0)
}
