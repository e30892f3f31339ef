package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrAcquireTimeout is returned when no pooled connection became free within
// the configured acquire timeout.
var ErrAcquireTimeout = errors.New("database: timed out acquiring connection")

type PoolConfig struct {
	URL            string
	MinConns       int32
	MaxConns       int32
	AcquireTimeout time.Duration
}

// NewPool opens a bounded pgx pool and verifies connectivity.
func NewPool(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		config.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		config.MinConns = cfg.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	slog.Info("database connected", "max_conns", config.MaxConns, "min_conns", config.MinConns)

	return pool, nil
}

// Bounded runs every statement on a connection acquired with a deadline, so a
// saturated pool fails fast instead of queueing callers indefinitely.
type Bounded struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
}

func NewBounded(pool *pgxpool.Pool, acquireTimeout time.Duration) *Bounded {
	return &Bounded{pool: pool, acquireTimeout: acquireTimeout}
}

func (b *Bounded) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	if b.acquireTimeout <= 0 {
		return b.pool.Acquire(ctx)
	}
	actx, cancel := context.WithTimeout(ctx, b.acquireTimeout)
	defer cancel()

	conn, err := b.pool.Acquire(actx)
	if err != nil {
		// Only the acquire deadline maps to ErrAcquireTimeout; a cancelled
		// caller keeps its own error.
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w after %s", ErrAcquireTimeout, b.acquireTimeout)
		}
		return nil, err
	}
	return conn, nil
}

func (b *Bounded) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	conn, err := b.acquire(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	defer conn.Release()
	return conn.Exec(ctx, sql, args...)
}

func (b *Bounded) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	conn, err := b.acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		conn.Release()
		return nil, err
	}
	return &releasingRows{Rows: rows, conn: conn}, nil
}

func (b *Bounded) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	conn, err := b.acquire(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return &releasingRow{row: conn.QueryRow(ctx, sql, args...), conn: conn}
}

func (b *Bounded) Ping(ctx context.Context) error {
	conn, err := b.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return conn.Ping(ctx)
}

func (b *Bounded) Close() {
	b.pool.Close()
	slog.Info("database disconnected")
}

type releasingRows struct {
	pgx.Rows
	conn *pgxpool.Conn
}

func (r *releasingRows) Close() {
	r.Rows.Close()
	if r.conn != nil {
		r.conn.Release()
		r.conn = nil
	}
}

type releasingRow struct {
	row  pgx.Row
	conn *pgxpool.Conn
}

func (r *releasingRow) Scan(dest ...interface{}) error {
	defer r.conn.Release()
	return r.row.Scan(dest...)
}

type errRow struct {
	err error
}

func (r errRow) Scan(...interface{}) error {
	return r.err
}
