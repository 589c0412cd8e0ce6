package embcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/relocation-quest/atlas/internal/db/redis"
	"github.com/relocation-quest/atlas/internal/domain"
)

type fakeStore struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.data[key]
	if !ok {
		return nil, redis.ErrKeyNotFound
	}
	return v, nil
}

func (s *fakeStore) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	return nil
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

func TestCachedEmbedder_MissThenHit(t *testing.T) {
	inner := &fakeEmbedder{result: domain.EmbeddingResult{
		Embedding:   []float32{0.25, -1.5, 3},
		TotalTokens: 7,
	}}
	cached := New(inner, newFakeStore(), time.Hour, nil, zap.NewNop())

	first, err := cached.Embed(context.Background(), "cyprus visa")
	if err != nil {
		t.Fatalf("first Embed() error: %v", err)
	}
	if first.TotalTokens != 7 {
		t.Errorf("first TotalTokens = %d, want 7", first.TotalTokens)
	}

	second, err := cached.Embed(context.Background(), "cyprus visa")
	if err != nil {
		t.Fatalf("second Embed() error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1", inner.calls)
	}
	if second.TotalTokens != 0 {
		t.Errorf("hit TotalTokens = %d, want 0", second.TotalTokens)
	}
	if len(second.Embedding) != 3 || second.Embedding[0] != 0.25 || second.Embedding[2] != 3 {
		t.Errorf("hit embedding = %v, want round-tripped vector", second.Embedding)
	}
}

func TestCachedEmbedder_StoreFailureIsMiss(t *testing.T) {
	inner := &fakeEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}
	store := newFakeStore()
	store.getErr = errors.New("connection refused")
	store.setErr = errors.New("connection refused")
	cached := New(inner, store, time.Hour, nil, zap.NewNop())

	res, err := cached.Embed(context.Background(), "portugal")
	if err != nil {
		t.Fatalf("Embed() error: %v", err)
	}
	if len(res.Embedding) != 1 {
		t.Errorf("Embedding = %v, want inner result", res.Embedding)
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1", inner.calls)
	}
}

func TestCachedEmbedder_InnerErrorPropagates(t *testing.T) {
	inner := &fakeEmbedder{err: domain.ErrEmbeddingUnavailable}
	cached := New(inner, newFakeStore(), time.Hour, nil, zap.NewNop())

	_, err := cached.Embed(context.Background(), "spain")
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Fatalf("Embed() error = %v, want ErrEmbeddingUnavailable", err)
	}
}
