package rules

import "fmt"

// Thresholds are the significance cut-offs and display caps. The defaults
// are the values the journal has always used; Validate guards overrides
// coming from config.
type Thresholds struct {
	MinSample         int `json:"min_sample" yaml:"min_sample"`
	MinRequiredSample int `json:"min_required_sample" yaml:"min_required_sample"`

	DoMoreWinRateDiff float64 `json:"do_more_win_rate_diff" yaml:"do_more_win_rate_diff"`
	DoMoreExpectancy  float64 `json:"do_more_expectancy" yaml:"do_more_expectancy"`

	RequiredWinRateDiff float64 `json:"required_win_rate_diff" yaml:"required_win_rate_diff"`
	RequiredExpectancy  float64 `json:"required_expectancy" yaml:"required_expectancy"`

	StopDoingWinRateDiff float64 `json:"stop_doing_win_rate_diff" yaml:"stop_doing_win_rate_diff"`
	StopDoingExpectancy  float64 `json:"stop_doing_expectancy" yaml:"stop_doing_expectancy"`

	NoTradeWinRate    float64 `json:"no_trade_win_rate" yaml:"no_trade_win_rate"`
	NoTradeExpectancy float64 `json:"no_trade_expectancy" yaml:"no_trade_expectancy"`

	MaxDoMore    int `json:"max_do_more" yaml:"max_do_more"`
	MaxStopDoing int `json:"max_stop_doing" yaml:"max_stop_doing"`
	MaxRequired  int `json:"max_required" yaml:"max_required"`
	MaxNoTrade   int `json:"max_no_trade" yaml:"max_no_trade"`
}

// DefaultThresholds: 15pp / 0.3R for do-more and stop-doing, scaled by 1.5
// for required conditions, with a five-trade floor.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinSample:            5,
		MinRequiredSample:    10,
		DoMoreWinRateDiff:    15,
		DoMoreExpectancy:     0.3,
		RequiredWinRateDiff:  22.5,
		RequiredExpectancy:   0.45,
		StopDoingWinRateDiff: -15,
		StopDoingExpectancy:  0,
		NoTradeWinRate:       35,
		NoTradeExpectancy:    -0.5,
		MaxDoMore:            5,
		MaxStopDoing:         5,
		MaxRequired:          3,
		MaxNoTrade:           3,
	}
}

// Validate rejects settings that would let tiny or inverted groups through.
func (t Thresholds) Validate() error {
	if t.MinSample <= 0 {
		return fmt.Errorf("min_sample must be positive")
	}
	if t.MinRequiredSample < t.MinSample {
		return fmt.Errorf("min_required_sample must be >= min_sample (%d)", t.MinSample)
	}
	if t.DoMoreWinRateDiff <= 0 || t.RequiredWinRateDiff <= 0 {
		return fmt.Errorf("do_more_win_rate_diff and required_win_rate_diff must be positive")
	}
	if t.StopDoingWinRateDiff >= 0 {
		return fmt.Errorf("stop_doing_win_rate_diff must be negative")
	}
	if t.NoTradeWinRate < 0 || t.NoTradeWinRate > 100 {
		return fmt.Errorf("no_trade_win_rate must be between 0 and 100")
	}
	if t.MaxDoMore <= 0 || t.MaxStopDoing <= 0 || t.MaxRequired <= 0 || t.MaxNoTrade <= 0 {
		return fmt.Errorf("bucket caps must be positive")
	}
	return nil
}
