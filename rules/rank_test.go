package rules

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rulesWith(exps ...float64) []Rule {
	out := make([]Rule, len(exps))
	for i, e := range exps {
		out[i] = Rule{Value: fmt.Sprintf("v%d", i), Expectancy: e}
	}
	return out
}

func expectancies(rs []Rule) []float64 {
	out := make([]float64, len(rs))
	for i, r := range rs {
		out[i] = r.Expectancy
	}
	return out
}

func TestRankOrdersByImpact(t *testing.T) {
	t.Parallel()

	in := Buckets{
		DoMore:             rulesWith(0.4, 0.9, 0.2),
		StopDoing:          rulesWith(-0.2, -0.9, -0.4),
		RequiredConditions: rulesWith(0.5, 1.5, 1.0),
		NoTrade:            rulesWith(-0.6, -1.0, -0.8),
	}

	out := Rank(in, DefaultThresholds())

	assert.Equal(t, []float64{0.9, 0.4, 0.2}, expectancies(out.DoMore))
	assert.Equal(t, []float64{-0.9, -0.4, -0.2}, expectancies(out.StopDoing))
	assert.Equal(t, []float64{1.5, 1.0, 0.5}, expectancies(out.RequiredConditions))
	assert.Equal(t, []float64{-1.0, -0.8, -0.6}, expectancies(out.NoTrade))

	// input untouched
	assert.Equal(t, []float64{0.4, 0.9, 0.2}, expectancies(in.DoMore))
}

func TestRankCapsEachBucket(t *testing.T) {
	t.Parallel()

	in := Buckets{
		DoMore:             rulesWith(1, 2, 3, 4, 5, 6, 7, 8),
		StopDoing:          rulesWith(-1, -2, -3, -4, -5, -6, -7),
		RequiredConditions: rulesWith(1, 2, 3, 4, 5),
		NoTrade:            rulesWith(-1, -2, -3, -4),
	}

	out := Rank(in, DefaultThresholds())

	assert.Equal(t, []float64{8, 7, 6, 5, 4}, expectancies(out.DoMore))
	assert.Equal(t, []float64{-7, -6, -5, -4, -3}, expectancies(out.StopDoing))
	assert.Equal(t, []float64{5, 4, 3}, expectancies(out.RequiredConditions))
	assert.Equal(t, []float64{-4, -3, -2}, expectancies(out.NoTrade))
}

func TestRankKeepsTieOrder(t *testing.T) {
	t.Parallel()

	out := Rank(Buckets{DoMore: rulesWith(0.5, 0.5, 0.7, 0.5)}, DefaultThresholds())
	require.Len(t, out.DoMore, 4)

	var values []string
	for _, r := range out.DoMore {
		values = append(values, r.Value)
	}
	assert.Equal(t, []string{"v2", "v0", "v1", "v3"}, values)
}

func TestRankEmptyBucketsStayNonNil(t *testing.T) {
	t.Parallel()

	out := Rank(emptyBuckets(), DefaultThresholds())
	assert.NotNil(t, out.DoMore)
	assert.NotNil(t, out.NoTrade)
	assert.Equal(t, 0, out.Len())
}
