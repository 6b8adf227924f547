// Package brew defines the tunable brewing thresholds shared by the advisor
// and stats modules. Every band boundary, tolerance, and sample minimum lives
// here and nowhere else.
package brew

const (
	// Optimal espresso extraction window in seconds. Applied uniformly by
	// taste prediction, grind advice, and extraction-time analytics.
	ExtractionOptimalMinSec = 25.0
	ExtractionOptimalMaxSec = 30.0

	// A timing deviation within this many seconds of the optimal band is
	// treated as borderline: confidence drops to low.
	BorderlineDeviationSec = 2.0

	// Step magnitude ladder: deviations up to SmallDeviationSec move one
	// grinder step, up to LargeDeviationSec two steps, beyond that three.
	SmallDeviationSec  = 3.0
	LargeDeviationSec  = 8.0
	MaxAdjustmentSteps = 3

	// Brew ratio bands (yield / dose).
	RatioUnderMax   = 1.5
	RatioTypicalMax = 3.0
	RatioOptimalMin = 2.0
	RatioOptimalMax = 2.5

	// A next-shot setting within this distance of the suggested setting
	// counts as following the advice. Matches practical grinder
	// repeatability.
	FollowToleranceGrindUnits = 0.1

	// Minimum sample sizes below which analytics report insufficient data.
	MinSamplesRatio  = 3
	MinSamplesTime   = 3
	MinSamplesTrends = 5

	// Half-over-half changes below both thresholds classify a trend as
	// stable.
	TrendStableRatioDelta = 0.1
	TrendStableTimeDelta  = 1.5
)
