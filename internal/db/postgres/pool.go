// Package postgres wraps a pgx connection pool with explicit lifecycle.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

// Config holds connection parameters for the relational store.
type Config struct {
	URL      string
	MinConns int32
	MaxConns int32
	// QueryTimeout bounds every outbound statement issued through the pool.
	QueryTimeout time.Duration
}

// Pool is a bounded pgx connection pool. It is created once at startup,
// shared by all concurrent requests, and closed only at shutdown. Each query
// acquires a connection for its duration and releases it unconditionally.
type Pool struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// NewPool creates and connects the pool. Vector column support is registered
// on every new connection.
func NewPool(ctx context.Context, cfg Config) (*Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MinConns > 0 {
		pc.MinConns = cfg.MinConns
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	pc.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Pool{pool: pool, queryTimeout: timeout}, nil
}

// Ping checks connectivity.
func (p *Pool) Ping(ctx context.Context) error {
	ctx, cancel := p.WithTimeout(ctx)
	defer cancel()
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// WaitForReady polls Ping until the store responds or the timeout expires.
func (p *Pool) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := p.pool.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Query runs a query. Callers bound the context via WithTimeout and must
// close the returned rows, which releases the connection back to the pool.
func (p *Pool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.pool.Query(ctx, sql, args...)
}

// QueryRow runs a single-row query.
func (p *Pool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return p.pool.QueryRow(ctx, sql, args...)
}

// WithTimeout derives a context bounded by the pool's statement timeout.
func (p *Pool) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, p.queryTimeout)
}

// Close releases the pool. Safe to call once at shutdown.
func (p *Pool) Close() {
	p.pool.Close()
}
