package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/franklinfx2/master-trader-sub000/trade"
)

const pgErrUniqueViolation = "23505"

// Postgres is a Store backed by a pgx connection pool, for journals shared
// between several clients.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Store = (*Postgres)(nil)

// NewPostgres connects to dsn, verifies the connection and applies the schema.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, PostgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

func (p *Postgres) RecordTrade(ctx context.Context, t trade.Record) error {
	if err := validate(t); err != nil {
		return err
	}
	_, err := p.pool.Exec(ctx, `
		INSERT INTO trades (`+tradeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		tradeArgs(t)...,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return duplicate(t.TradeID)
		}
		return fmt.Errorf("insert trade %s: %w", t.TradeID, err)
	}
	return nil
}

func (p *Postgres) GetTrade(ctx context.Context, tradeID string) (trade.Record, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE trade_id = $1`, tradeID)

	rec, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trade.Record{}, notFound(tradeID)
		}
		return trade.Record{}, fmt.Errorf("get trade %s: %w", tradeID, err)
	}
	return rec, nil
}

func (p *Postgres) ListTrades(ctx context.Context) ([]trade.Record, error) {
	return p.query(ctx, `SELECT `+tradeColumns+` FROM trades `+orderAsc)
}

func (p *Postgres) ListTradesBetween(ctx context.Context, start, end time.Time) ([]trade.Record, error) {
	return p.query(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE executed_at >= $1 AND executed_at < $2
		`+orderAsc, start, end)
}

func (p *Postgres) ListRecentTrades(ctx context.Context, n int) ([]trade.Record, error) {
	if n <= 0 {
		return p.ListTrades(ctx)
	}
	return p.query(ctx, `
		SELECT `+tradeColumns+` FROM (
			SELECT `+tradeColumns+` FROM trades `+orderDesc+` LIMIT $1
		) recent `+orderAsc, n)
}

func (p *Postgres) DeleteTrade(ctx context.Context, tradeID string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM trades WHERE trade_id = $1`, tradeID)
	if err != nil {
		return fmt.Errorf("delete trade %s: %w", tradeID, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(tradeID)
	}
	return nil
}

// Close releases the pool. It never fails; the error is there for Recorder.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func (p *Postgres) query(ctx context.Context, q string, args ...any) ([]trade.Record, error) {
	rows, err := p.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	defer rows.Close()

	var out []trade.Record
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
