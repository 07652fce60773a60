package rules

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/franklinfx2/master-trader-sub000/trade"
)

type accumulator struct {
	wins, losses int
	rs           []float64
	winRs        []float64
}

// GroupTrades aggregates closed trades per (dimension, value) and keeps the
// groups with at least minSample trades. Output follows registry order, with
// values sorted within each dimension.
func GroupTrades(closed []trade.Record, minSample int) []FieldGroup {
	perDim := make([]map[string]*accumulator, len(dimensions))
	for i := range perDim {
		perDim[i] = make(map[string]*accumulator)
	}

	for _, t := range closed {
		r := contribution(t)
		for i, d := range dimensions {
			v, ok := d.Extract(t)
			if !ok {
				continue
			}
			acc := perDim[i][v]
			if acc == nil {
				acc = &accumulator{}
				perDim[i][v] = acc
			}
			acc.rs = append(acc.rs, r)
			if t.Outcome == trade.OutcomeWin {
				acc.wins++
				acc.winRs = append(acc.winRs, r)
			} else {
				acc.losses++
			}
		}
	}

	var groups []FieldGroup
	for i, d := range dimensions {
		values := make([]string, 0, len(perDim[i]))
		for v := range perDim[i] {
			values = append(values, v)
		}
		sort.Strings(values)

		for _, v := range values {
			acc := perDim[i][v]
			n := acc.wins + acc.losses
			if n < minSample {
				continue
			}
			g := FieldGroup{
				Field:      d.Name,
				Value:      v,
				Wins:       acc.wins,
				Losses:     acc.losses,
				SampleSize: n,
				TotalR:     floats.Sum(acc.rs),
				WinRate:    winRate(acc.wins, n),
			}
			g.Expectancy = g.TotalR / float64(n)
			if len(acc.winRs) > 0 {
				g.AvgWinR = stat.Mean(acc.winRs, nil)
			}
			groups = append(groups, g)
		}
	}
	return groups
}
