package rules

import (
	"strconv"
	"strings"
	"time"

	"github.com/franklinfx2/master-trader-sub000/trade"
)

// Dimension names, in registry order.
const (
	DimSession       = "session"
	DimSetupType     = "setup_type"
	DimHTFBias       = "htf_bias"
	DimRulesFollowed = "rules_followed"
	DimGrade         = "grade"
	DimDirection     = "direction"
	DimConfidence    = "confidence"
	DimDayOfWeek     = "day_of_week"
	DimHourRange     = "hour_range"
	DimRiskLevel     = "risk_level"
)

// Hour-of-day buckets.
const (
	HourNight     = "Night"
	HourMorning   = "Morning"
	HourAfternoon = "Afternoon"
	HourEvening   = "Evening"
)

// Risk-size buckets.
const (
	RiskVeryLow = "Very Low"
	RiskLow     = "Low"
	RiskMedium  = "Medium"
	RiskHigh    = "High"
)

// Extractor returns a trade's value for one dimension, or false when the
// trade has nothing to say about it.
type Extractor func(trade.Record) (string, bool)

// Dimension pairs a name with its extractor.
type Dimension struct {
	Name    string
	Extract Extractor
}

var dimensions = []Dimension{
	{DimSession, func(r trade.Record) (string, bool) { return text(r.Session) }},
	{DimSetupType, func(r trade.Record) (string, bool) { return text(r.SetupType) }},
	{DimHTFBias, func(r trade.Record) (string, bool) { return text(r.HTFBias) }},
	{DimRulesFollowed, rulesFollowed},
	{DimGrade, func(r trade.Record) (string, bool) { return text(r.Grade) }},
	{DimDirection, func(r trade.Record) (string, bool) { return text(r.Direction) }},
	{DimConfidence, confidence},
	{DimDayOfWeek, dayOfWeek},
	{DimHourRange, hourRange},
	{DimRiskLevel, riskLevel},
}

// Dimensions returns a copy of the registry.
func Dimensions() []Dimension {
	out := make([]Dimension, len(dimensions))
	copy(out, dimensions)
	return out
}

// Features returns every present dimension value of r, keyed by dimension name.
func Features(r trade.Record) map[string]string {
	out := make(map[string]string, len(dimensions))
	for _, d := range dimensions {
		if v, ok := d.Extract(r); ok {
			out[d.Name] = v
		}
	}
	return out
}

func text(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

func rulesFollowed(r trade.Record) (string, bool) {
	if r.RulesFollowed == nil {
		return "", false
	}
	if *r.RulesFollowed {
		return "Yes", true
	}
	return "No", true
}

func confidence(r trade.Record) (string, bool) {
	if r.Confidence == nil {
		return "", false
	}
	return strconv.Itoa(*r.Confidence), true
}

func dayOfWeek(r trade.Record) (string, bool) {
	if r.ExecutedAt.IsZero() {
		return "", false
	}
	return r.ExecutedAt.Weekday().String(), true
}

func hourRange(r trade.Record) (string, bool) {
	if r.ExecutedAt.IsZero() {
		return "", false
	}
	return HourRange(r.ExecutedAt), true
}

func riskLevel(r trade.Record) (string, bool) {
	if r.RiskPct == nil {
		return "", false
	}
	return RiskLevel(*r.RiskPct), true
}

// HourRange buckets t's hour in its own location.
func HourRange(t time.Time) string {
	switch h := t.Hour(); {
	case h < 6:
		return HourNight
	case h < 12:
		return HourMorning
	case h < 18:
		return HourAfternoon
	default:
		return HourEvening
	}
}

// RiskLevel buckets a risk percentage: (..0.5], (0.5..1], (1..2], (2..).
func RiskLevel(pct float64) string {
	switch {
	case pct <= 0.5:
		return RiskVeryLow
	case pct <= 1:
		return RiskLow
	case pct <= 2:
		return RiskMedium
	default:
		return RiskHigh
	}
}
