// Package trade holds the journal's trade record, shared by the stores,
// the rule miner and the HTTP/CLI surfaces.
package trade

import (
	"fmt"
	"strings"
	"time"
)

// Outcome is the result state of a journaled trade.
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeLoss      Outcome = "loss"
	OutcomeBreakeven Outcome = "breakeven"
	OutcomeOpen      Outcome = "open"
)

// Valid reports whether o is one of the four known outcomes.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeWin, OutcomeLoss, OutcomeBreakeven, OutcomeOpen:
		return true
	}
	return false
}

// Closed reports whether the trade counts toward win rate and expectancy.
func (o Outcome) Closed() bool {
	return o == OutcomeWin || o == OutcomeLoss
}

// ParseOutcome accepts the outcome names case-insensitively, plus a few
// spellings traders use for breakeven.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "win", "w":
		return OutcomeWin, nil
	case "loss", "l":
		return OutcomeLoss, nil
	case "breakeven", "break_even", "break-even", "be":
		return OutcomeBreakeven, nil
	case "open":
		return OutcomeOpen, nil
	}
	return "", fmt.Errorf("unknown outcome %q (want win, loss, breakeven or open)", s)
}

// Record is a single journaled trade. Pointer fields are optional and nil
// when the trader left them blank.
type Record struct {
	TradeID    string    `json:"trade_id"`
	Instrument string    `json:"instrument,omitempty"`
	Outcome    Outcome   `json:"outcome"`
	RMultiple  *float64  `json:"r_multiple,omitempty"`
	ExecutedAt time.Time `json:"executed_at"`

	Session       string   `json:"session,omitempty"`
	SetupType     string   `json:"setup_type,omitempty"`
	HTFBias       string   `json:"htf_bias,omitempty"`
	RulesFollowed *bool    `json:"rules_followed,omitempty"`
	Grade         string   `json:"grade,omitempty"`
	Direction     string   `json:"direction,omitempty"`
	Confidence    *int     `json:"confidence,omitempty"`
	RiskPct       *float64 `json:"risk_pct,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// Validate checks the fields every store requires.
func (r Record) Validate() error {
	if strings.TrimSpace(r.TradeID) == "" {
		return fmt.Errorf("trade_id is required")
	}
	if !r.Outcome.Valid() {
		return fmt.Errorf("trade %s: invalid outcome %q", r.TradeID, r.Outcome)
	}
	return nil
}

// Float returns a pointer to v, for filling optional fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }
