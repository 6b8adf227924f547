package dto

type Distribution struct {
	Count  int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

type RatioAnalysisOutput struct {
	// Insufficient is true when too few usable shots exist; the numeric
	// fields are meaningless in that case.
	Insufficient bool
	Required     int
	Distribution
	Excluded   int
	PctUnder   float64
	PctTypical float64
	PctOptimal float64
	PctOver    float64
}

type TimeAnalysisOutput struct {
	Insufficient bool
	Required     int
	Distribution
	Excluded   int
	PctFast    float64
	PctOptimal float64
	PctSlow    float64
}

type HalfSummary struct {
	Shots     int
	MeanRatio float64
	MeanTime  float64
}

type TrendsOutput struct {
	Insufficient bool
	Required     int
	SampleSize   int
	Earlier      HalfSummary
	Later        HalfSummary
	RatioDelta   float64
	TimeDelta    float64
	Class        string
	ShotsPerDay  float64
	DaysAnalyzed int
}
