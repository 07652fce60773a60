package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/franklinfx2/master-trader-sub000/trade"
)

// SQLite is the default Store, one file per journal.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// NewSQLite opens (or creates) the journal at path and applies the schema.
// ":memory:" gives a throwaway database.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// one connection keeps :memory: databases alive and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(SQLiteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(ctx context.Context, t trade.Record) error {
	if err := validate(t); err != nil {
		return err
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO trades (`+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tradeArgs(t)...,
	)
	if err != nil {
		var se sqlite3.Error
		if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return duplicate(t.TradeID)
		}
		return fmt.Errorf("insert trade %s: %w", t.TradeID, err)
	}
	return nil
}

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(ctx context.Context, tradeID string) (trade.Record, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE trade_id = ?`, tradeID)

	rec, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return trade.Record{}, notFound(tradeID)
		}
		return trade.Record{}, fmt.Errorf("get trade %s: %w", tradeID, err)
	}
	return rec, nil
}

func (j *SQLite) ListTrades(ctx context.Context) ([]trade.Record, error) {
	return j.query(ctx, `SELECT `+tradeColumns+` FROM trades `+orderAsc)
}

// ListTradesBetween returns trades whose executed_at is within [start, end).
func (j *SQLite) ListTradesBetween(ctx context.Context, start, end time.Time) ([]trade.Record, error) {
	return j.query(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE executed_at >= ? AND executed_at < ?
		`+orderAsc, start.UTC(), end.UTC())
}

func (j *SQLite) ListRecentTrades(ctx context.Context, n int) ([]trade.Record, error) {
	if n <= 0 {
		return j.ListTrades(ctx)
	}
	return j.query(ctx, `
		SELECT `+tradeColumns+` FROM (
			SELECT `+tradeColumns+` FROM trades `+orderDesc+` LIMIT ?
		) `+orderAsc, n)
}

func (j *SQLite) DeleteTrade(ctx context.Context, tradeID string) error {
	res, err := j.db.ExecContext(ctx, `DELETE FROM trades WHERE trade_id = ?`, tradeID)
	if err != nil {
		return fmt.Errorf("delete trade %s: %w", tradeID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(tradeID)
	}
	return nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func (j *SQLite) query(ctx context.Context, q string, args ...any) ([]trade.Record, error) {
	rows, err := j.db.QueryContext(ctx, q, args...)
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
