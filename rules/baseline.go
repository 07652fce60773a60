package rules

import (
	"gonum.org/v1/gonum/floats"

	"github.com/franklinfx2/master-trader-sub000/trade"
)

// FilterClosed keeps wins and losses. Open and breakeven trades never reach
// the baseline or any group.
func FilterClosed(trades []trade.Record) []trade.Record {
	closed := make([]trade.Record, 0, len(trades))
	for _, t := range trades {
		if t.Outcome.Closed() {
			closed = append(closed, t)
		}
	}
	return closed
}

// contribution is the R a closed trade adds to expectancy. A win counts its
// realized R, or 1R when none was recorded. A loss always counts as exactly
// -1R, even when RMultiple says otherwise.
func contribution(t trade.Record) float64 {
	if t.Outcome == trade.OutcomeLoss {
		return -1
	}
	if t.RMultiple == nil {
		return 1
	}
	return *t.RMultiple
}

// ComputeBaseline measures win rate (percent) and expectancy (R per trade)
// over already-closed trades, using the unit-loss convention of contribution.
func ComputeBaseline(closed []trade.Record) Baseline {
	b := Baseline{Trades: len(closed)}
	if b.Trades == 0 {
		return b
	}

	rs := make([]float64, 0, len(closed))
	for _, t := range closed {
		switch t.Outcome {
		case trade.OutcomeWin:
			b.Wins++
		case trade.OutcomeLoss:
			b.Losses++
		}
		rs = append(rs, contribution(t))
	}

	b.WinRate = winRate(b.Wins, b.Trades)
	b.Expectancy = floats.Sum(rs) / float64(b.Trades)
	return b
}

func winRate(wins, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(wins) * 100 / float64(total)
}
