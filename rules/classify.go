package rules

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Classify compares every group with the baseline and emits one Rule per
// bucket the group qualifies for. Buckets are not exclusive. The expectancy
// diff is reported on each rule but thresholds test the group's own
// expectancy.
func Classify(groups []FieldGroup, base Baseline, th Thresholds) Buckets {
	out := emptyBuckets()
	for _, g := range groups {
		wrDiff := g.WinRate - base.WinRate
		expDiff := g.Expectancy - base.Expectancy

		rule := func(b Bucket) Rule {
			return Rule{
				Statement:      Statement(b, g.Field, g.Value),
				Bucket:         b,
				Dimension:      g.Field,
				Value:          g.Value,
				SampleSize:     g.SampleSize,
				WinRate:        g.WinRate,
				Expectancy:     g.Expectancy,
				AvgWinR:        g.AvgWinR,
				WinRateDiff:    wrDiff,
				ExpectancyDiff: expDiff,
			}
		}

		if wrDiff >= th.DoMoreWinRateDiff && g.Expectancy >= th.DoMoreExpectancy {
			out.DoMore = append(out.DoMore, rule(BucketDoMore))
		}
		if wrDiff >= th.RequiredWinRateDiff && g.Expectancy >= th.RequiredExpectancy &&
			g.SampleSize >= th.MinRequiredSample {
			out.RequiredConditions = append(out.RequiredConditions, rule(BucketRequiredCondition))
		}
		if wrDiff <= th.StopDoingWinRateDiff && g.Expectancy < th.StopDoingExpectancy {
			out.StopDoing = append(out.StopDoing, rule(BucketStopDoing))
		}
		if g.WinRate <= th.NoTradeWinRate && g.Expectancy <= th.NoTradeExpectancy &&
			g.SampleSize >= th.MinSample {
			out.NoTrade = append(out.NoTrade, rule(BucketNoTrade))
		}
	}
	return out
}

// Statement renders the rule text for a bucket.
func Statement(b Bucket, field, value string) string {
	name := HumanizeField(field)
	switch b {
	case BucketDoMore:
		return fmt.Sprintf("Do more trades where %s is %s", name, value)
	case BucketStopDoing:
		return fmt.Sprintf("Stop taking trades where %s is %s", name, value)
	case BucketRequiredCondition:
		return fmt.Sprintf("Only trade when %s is %s", name, value)
	case BucketNoTrade:
		return fmt.Sprintf("Never trade when %s is %s", name, value)
	}
	return fmt.Sprintf("%s is %s", name, value)
}

// HumanizeField turns "setup_type" into "Setup Type".
func HumanizeField(field string) string {
	// A Caser keeps state, so each call gets its own.
	return cases.Title(language.English).String(strings.ReplaceAll(field, "_", " "))
}
