// Package journal persists trade records and reads them back for the rule
// miner, the CLI and the HTTP API.
package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/franklinfx2/master-trader-sub000/trade"
)

var (
	// ErrNotFound is returned when no trade has the requested id.
	ErrNotFound = errors.New("trade not found")
	// ErrDuplicateTrade is returned when a trade id is already journaled.
	ErrDuplicateTrade = errors.New("trade already recorded")
	// ErrInvalidTrade wraps validation failures from trade.Record.Validate.
	ErrInvalidTrade = errors.New("invalid trade")
)

// Recorder accepts new trades.
type Recorder interface {
	RecordTrade(ctx context.Context, t trade.Record) error
	Close() error
}

// Store is a Recorder that can also read trades back.
//
// Listing methods order by executed_at then trade_id, with trades missing a
// timestamp first.
type Store interface {
	Recorder

	GetTrade(ctx context.Context, tradeID string) (trade.Record, error)
	ListTrades(ctx context.Context) ([]trade.Record, error)
	// ListTradesBetween returns trades executed within [start, end).
	ListTradesBetween(ctx context.Context, start, end time.Time) ([]trade.Record, error)
	// ListRecentTrades returns the n most recently executed trades, oldest
	// first. n <= 0 returns every trade.
	ListRecentTrades(ctx context.Context, n int) ([]trade.Record, error)
	DeleteTrade(ctx context.Context, tradeID string) error
}

func validate(t trade.Record) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTrade, err)
	}
	return nil
}

func notFound(tradeID string) error {
	return fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
}

func duplicate(tradeID string) error {
	return fmt.Errorf("trade %q: %w", tradeID, ErrDuplicateTrade)
}

// executedAt maps the zero time to NULL and stores everything else in UTC.
func executedAt(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}
