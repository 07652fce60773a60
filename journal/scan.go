package journal

import (
	"time"

	"github.com/franklinfx2/master-trader-sub000/trade"
)

// rowScanner is satisfied by *sql.Row, *sql.Rows, pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTrade reads one row selected with tradeColumns.
func scanTrade(s rowScanner) (trade.Record, error) {
	var (
		rec      trade.Record
		outcome  string
		executed *time.Time
	)
	err := s.Scan(
		&rec.TradeID,
		&rec.Instrument,
		&outcome,
		&rec.RMultiple,
		&executed,
		&rec.Session,
		&rec.SetupType,
		&rec.HTFBias,
		&rec.RulesFollowed,
		&rec.Grade,
		&rec.Direction,
		&rec.Confidence,
		&rec.RiskPct,
		&rec.Notes,
	)
	if err != nil {
		return trade.Record{}, err
	}
	rec.Outcome = trade.Outcome(outcome)
	if executed != nil {
		rec.ExecutedAt = executed.UTC()
	}
	return rec, nil
}

// tradeArgs is the insert argument list matching tradeColumns.
func tradeArgs(t trade.Record) []any {
	return []any{
		t.TradeID,
		t.Instrument,
		string(t.Outcome),
		t.RMultiple,
		executedAt(t.ExecutedAt),
		t.Session,
		t.SetupType,
		t.HTFBias,
		t.RulesFollowed,
		t.Grade,
		t.Direction,
		t.Confidence,
		t.RiskPct,
		t.Notes,
	}
}
