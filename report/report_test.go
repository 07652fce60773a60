package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franklinfx2/master-trader-sub000/rules"
)

func okReport() rules.Report {
	london := rules.Rule{
		Statement:   "Do more trades where Session is London",
		Bucket:      rules.BucketDoMore,
		Dimension:   rules.DimSession,
		Value:       "London",
		SampleSize:  20,
		WinRate:     70,
		Expectancy:  0.5,
		AvgWinR:     1.142857,
		WinRateDiff: 20,
	}
	friday := rules.Rule{
		Statement:   "Never trade when Day Of Week is Friday",
		Bucket:      rules.BucketNoTrade,
		Dimension:   rules.DimDayOfWeek,
		Value:       "Friday",
		SampleSize:  8,
		WinRate:     12.5,
		Expectancy:  -0.75,
		AvgWinR:     1,
		WinRateDiff: -37.5,
	}
	return rules.Report{
		Status:             rules.StatusOK,
		BaselineWinRate:    50,
		BaselineExpectancy: 0,
		TotalTrades:        100,
		RequiredTrades:     5,
		Groups:             12,
		Buckets: rules.Buckets{
			DoMore:             []rules.Rule{london},
			StopDoing:          []rules.Rule{},
			RequiredConditions: []rules.Rule{},
			NoTrade:            []rules.Rule{friday},
		},
	}
}

func insufficientReport() rules.Report {
	return rules.Mine(nil)
}

func TestOrg(t *testing.T) {
	t.Parallel()

	out, err := Org(okReport())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "* TRADING RULES\n:PROPERTIES:\n"))
	assert.Contains(t, out, ":STATUS:        ok")
	assert.Contains(t, out, ":TRADES:        100")
	assert.Contains(t, out, ":BASE_WINRATE:  50.0%")
	assert.Contains(t, out, ":BASE_EXP:      +0.00R")
	assert.Contains(t, out, ":GROUPS:        12")
	assert.Contains(t, out, "\n** Do more\n| Rule |")
	assert.Contains(t, out, "| Do more trades where Session is London | 20 | 70.0% | +20.0pp | +0.50R | +1.14R |")
	assert.Contains(t, out, "** Stop doing\n- none")
	assert.Contains(t, out, "| Never trade when Day Of Week is Friday | 8 | 12.5% | -37.5pp | -0.75R | +1.00R |")

	// buckets render in a fixed order
	assert.Less(t, strings.Index(out, "** Do more"), strings.Index(out, "** Required conditions"))
	assert.Less(t, strings.Index(out, "** Required conditions"), strings.Index(out, "** Stop doing"))
	assert.Less(t, strings.Index(out, "** Stop doing"), strings.Index(out, "** Never trade"))
}

func TestOrgInsufficientData(t *testing.T) {
	t.Parallel()

	out, err := Org(insufficientReport())
	require.NoError(t, err)

	assert.Contains(t, out, ":STATUS:        insufficient_data")
	assert.Contains(t, out, ":MIN_TRADES:    5")
	assert.NotContains(t, out, ":BASE_WINRATE:")
	assert.NotContains(t, out, "** ")
	assert.Contains(t, out, "need at least 5 closed trades")
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	out := Markdown(okReport())

	assert.True(t, strings.HasPrefix(out, "# Trading Rules\n\n"))
	assert.Contains(t, out, "| Closed trades | 100 |")
	assert.Contains(t, out, "| Baseline win rate | 50.0% |")
	assert.Contains(t, out, "| Baseline expectancy | +0.00R |")
	assert.Contains(t, out, "## Do more\n\n| Rule |")
	assert.Contains(t, out, "| Do more trades where Session is London | 20 | 70.0% | +20.0pp | +0.50R | +1.14R |")
	assert.Contains(t, out, "## Stop doing\n\nNone.")
	assert.Contains(t, out, "## Never trade\n\n| Rule |")
}

func TestMarkdownInsufficientData(t *testing.T) {
	t.Parallel()

	out := Markdown(insufficientReport())
	assert.Contains(t, out, "**Not enough data.** need at least 5 closed trades to mine rules, have 0")
	assert.NotContains(t, out, "## ")
}

func TestMarkdownEscapesPipes(t *testing.T) {
	t.Parallel()

	rep := okReport()
	rep.DoMore[0].Statement = "Do more trades where Setup Type is A|B"
	assert.Contains(t, Markdown(rep), `A\|B`)
}
