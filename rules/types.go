package rules

// Status tells the caller whether the report carries mined rules.
type Status string

const (
	StatusOK               Status = "ok"
	StatusInsufficientData Status = "insufficient_data"
)

// Bucket is the category a rule was classified into. A group can land in
// several buckets; each membership produces its own Rule.
type Bucket string

const (
	BucketDoMore            Bucket = "do_more"
	BucketStopDoing         Bucket = "stop_doing"
	BucketRequiredCondition Bucket = "required_condition"
	BucketNoTrade           Bucket = "no_trade"
)

// Baseline is the reference every group is compared against.
type Baseline struct {
	Trades     int     `json:"trades"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	WinRate    float64 `json:"win_rate"`
	Expectancy float64 `json:"expectancy"`
}

// FieldGroup aggregates the closed trades sharing one value of one dimension.
type FieldGroup struct {
	Field      string  `json:"field"`
	Value      string  `json:"value"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	SampleSize int     `json:"sample_size"`
	TotalR     float64 `json:"total_r"`
	WinRate    float64 `json:"win_rate"`
	Expectancy float64 `json:"expectancy"`
	AvgWinR    float64 `json:"avg_win_r"`
}

// Rule is one actionable finding.
type Rule struct {
	Statement      string  `json:"statement"`
	Bucket         Bucket  `json:"bucket"`
	Dimension      string  `json:"dimension"`
	Value          string  `json:"value"`
	SampleSize     int     `json:"sample_size"`
	WinRate        float64 `json:"win_rate"`
	Expectancy     float64 `json:"expectancy"`
	AvgWinR        float64 `json:"avg_win_r"`
	WinRateDiff    float64 `json:"win_rate_diff"`
	ExpectancyDiff float64 `json:"expectancy_diff"`
}

// Buckets holds the four rule lists in report order.
type Buckets struct {
	DoMore             []Rule `json:"do_more"`
	StopDoing          []Rule `json:"stop_doing"`
	RequiredConditions []Rule `json:"required_conditions"`
	NoTrade            []Rule `json:"no_trade"`
}

func emptyBuckets() Buckets {
	return Buckets{
		DoMore:             []Rule{},
		StopDoing:          []Rule{},
		RequiredConditions: []Rule{},
		NoTrade:            []Rule{},
	}
}

// Len is the total number of rules across all buckets.
func (b Buckets) Len() int {
	return len(b.DoMore) + len(b.StopDoing) + len(b.RequiredConditions) + len(b.NoTrade)
}

// Report is the full output of one mining run.
type Report struct {
	Status             Status  `json:"status"`
	Message            string  `json:"message,omitempty"`
	BaselineWinRate    float64 `json:"baseline_win_rate"`
	BaselineExpectancy float64 `json:"baseline_expectancy"`
	TotalTrades        int     `json:"total_trades"`
	RequiredTrades     int     `json:"required_trades"`
	Groups             int     `json:"groups"`
	Buckets
}
