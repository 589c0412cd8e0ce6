package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrArticleNotFound signals a missing article.
	ErrArticleNotFound = errors.New("article not found")
	// ErrDestinationNotFound signals a missing destination.
	ErrDestinationNotFound = errors.New("destination not found")
	// ErrEmbeddingUnavailable signals that the embedding provider errored or
	// timed out. Search treats this as "vector signal absent" and falls back
	// to keyword-only retrieval; it is never surfaced to the caller.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
	// ErrStoreUnavailable signals a relational store connection or query failure.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrEmptyQuery signals a query that is blank after trimming.
	ErrEmptyQuery = errors.New("empty query")
)
