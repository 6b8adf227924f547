package domain

import (
	"sort"
	"time"

	"brewlog/internal/platform/brew"
)

// Sample is the aggregator's view of one shot. The caller hands in a
// snapshot slice in chronological order; nothing here mutates it.
type Sample struct {
	DoseGrams         float64
	YieldGrams        float64
	ExtractionSeconds *float64
	PulledAt          time.Time
}

// Distribution is the shared shape of the ratio and time statistics.
type Distribution struct {
	Count  int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

type BrewRatioAnalysis struct {
	Distribution
	// Excluded counts shots skipped for zero or missing dose.
	Excluded   int
	PctUnder   float64
	PctTypical float64
	// PctOptimal is the share inside the 2.0-2.5 sub-band of typical.
	PctOptimal float64
	PctOver    float64
}

type ExtractionTimeAnalysis struct {
	Distribution
	// Excluded counts shots without a recorded extraction time.
	Excluded   int
	PctFast    float64
	PctOptimal float64
	PctSlow    float64
}

// AnalyzeRatio computes the brew ratio distribution. The second return is
// false when fewer than brew.MinSamplesRatio usable shots exist; callers
// must treat that as "not enough data", never as a zero result.
func AnalyzeRatio(samples []Sample) (BrewRatioAnalysis, bool) {
	ratios := make([]float64, 0, len(samples))
	excluded := 0
	for _, sample := range samples {
		if sample.DoseGrams <= 0 {
			excluded++
			continue
		}
		ratios = append(ratios, sample.YieldGrams/sample.DoseGrams)
	}
	if len(ratios) < brew.MinSamplesRatio {
		return BrewRatioAnalysis{}, false
	}

	analysis := BrewRatioAnalysis{Distribution: describe(ratios), Excluded: excluded}
	under, typical, optimal, over := 0, 0, 0, 0
	for _, ratio := range ratios {
		switch {
		case ratio < brew.RatioUnderMax:
			under++
		case ratio > brew.RatioTypicalMax:
			over++
		default:
			typical++
			if ratio >= brew.RatioOptimalMin && ratio <= brew.RatioOptimalMax {
				optimal++
			}
		}
	}
	total := float64(len(ratios))
	analysis.PctUnder = 100 * float64(under) / total
	analysis.PctTypical = 100 * float64(typical) / total
	analysis.PctOptimal = 100 * float64(optimal) / total
	analysis.PctOver = 100 * float64(over) / total
	return analysis, true
}

// AnalyzeTime computes the extraction time distribution against the one
// optimal band shared with the advisor.
func AnalyzeTime(samples []Sample) (ExtractionTimeAnalysis, bool) {
	times := make([]float64, 0, len(samples))
	excluded := 0
	for _, sample := range samples {
		if sample.ExtractionSeconds == nil {
			excluded++
			continue
		}
		times = append(times, *sample.ExtractionSeconds)
	}
	if len(times) < brew.MinSamplesTime {
		return ExtractionTimeAnalysis{}, false
	}

	analysis := ExtractionTimeAnalysis{Distribution: describe(times), Excluded: excluded}
	fast, optimal, slow := 0, 0, 0
	for _, seconds := range times {
		switch {
		case seconds < brew.ExtractionOptimalMinSec:
			fast++
		case seconds > brew.ExtractionOptimalMaxSec:
			slow++
		default:
			optimal++
		}
	}
	total := float64(len(times))
	analysis.PctFast = 100 * float64(fast) / total
	analysis.PctOptimal = 100 * float64(optimal) / total
	analysis.PctSlow = 100 * float64(slow) / total
	return analysis, true
}

func describe(values []float64) Distribution {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}
	return Distribution{
		Count:  len(sorted),
		Mean:   sum / float64(len(sorted)),
		Median: median,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}
