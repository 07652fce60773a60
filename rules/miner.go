// Package rules mines behavioral trading rules from journaled trades.
//
// Each categorical condition (session, setup, bias, grade, time of day,
// risk size, ...) is grouped on its own and compared with the baseline of
// all closed trades. Groups that beat or trail the baseline by a fixed margin
// become "do more", "stop doing", "required condition" or "never trade"
// rules. Mining is a pure function of the trades and thresholds: it does no
// I/O and returns the same Report for the same input.
package rules

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/franklinfx2/master-trader-sub000/trade"
)

// Miner runs the mining pipeline with a fixed set of thresholds.
type Miner struct {
	th     Thresholds
	logger zerolog.Logger
}

// Option configures a Miner.
type Option func(*Miner)

// WithThresholds overrides the defaults. th should pass Validate.
func WithThresholds(th Thresholds) Option {
	return func(m *Miner) { m.th = th }
}

// WithLogger attaches a logger for debug traces of each stage.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Miner) { m.logger = l.With().Str("component", "rules").Logger() }
}

// New returns a Miner using DefaultThresholds unless overridden.
func New(opts ...Option) *Miner {
	m := &Miner{
		th:     DefaultThresholds(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Thresholds returns the thresholds this miner applies.
func (m *Miner) Thresholds() Thresholds {
	return m.th
}

// Mine runs filter, baseline, grouping, classification and ranking over
// trades. Too few closed trades yields StatusInsufficientData rather than an
// error.
func (m *Miner) Mine(trades []trade.Record) Report {
	closed := FilterClosed(trades)
	if len(closed) < m.th.MinSample {
		m.logger.Debug().
			Int("closed", len(closed)).
			Int("required", m.th.MinSample).
			Msg("not enough closed trades")
		msg := fmt.Sprintf("need at least %d closed trades to mine rules, have %d",
			m.th.MinSample, len(closed))
		return Report{
			Status:         StatusInsufficientData,
			Message:        msg,
			TotalTrades:    len(closed),
			RequiredTrades: m.th.MinSample,
			Buckets:        emptyBuckets(),
		}
	}

	base := ComputeBaseline(closed)
	groups := GroupTrades(closed, m.th.MinSample)
	ranked := Rank(Classify(groups, base, m.th), m.th)

	rep := Report{
		Status:             StatusOK,
		BaselineWinRate:    base.WinRate,
		BaselineExpectancy: base.Expectancy,
		TotalTrades:        base.Trades,
		RequiredTrades:     m.th.MinSample,
		Groups:             len(groups),
		Buckets:            ranked,
	}
	if ranked.Len() == 0 {
		rep.Message = fmt.Sprintf("no significant patterns across %d closed trades yet", base.Trades)
	}

	m.logger.Debug().
		Int("input", len(trades)).
		Int("closed", base.Trades).
		Int("groups", len(groups)).
		Int("rules", ranked.Len()).
		Float64("baseline_win_rate", base.WinRate).
		Float64("baseline_expectancy", base.Expectancy).
		Msg("mined rules")
	return rep
}

// Mine runs a Miner with the default thresholds.
func Mine(trades []trade.Record) Report {
	return New().Mine(trades)
}
