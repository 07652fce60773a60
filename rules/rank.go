package rules

import "sort"

// Rank orders each bucket by impact and truncates it to its cap. Positive
// buckets put the best expectancy first, negative buckets the worst. Ties
// keep their classification order.
func Rank(b Buckets, th Thresholds) Buckets {
	return Buckets{
		DoMore:             top(b.DoMore, th.MaxDoMore, descending),
		StopDoing:          top(b.StopDoing, th.MaxStopDoing, ascending),
		RequiredConditions: top(b.RequiredConditions, th.MaxRequired, descending),
		NoTrade:            top(b.NoTrade, th.MaxNoTrade, ascending),
	}
}

type order bool

const (
	ascending  order = false
	descending order = true
)

func top(in []Rule, limit int, o order) []Rule {
	out := make([]Rule, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		if o == descending {
			return out[i].Expectancy > out[j].Expectancy
		}
		return out[i].Expectancy < out[j].Expectancy
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
