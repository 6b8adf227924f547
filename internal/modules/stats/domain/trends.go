package domain

import (
	"math"

	"brewlog/internal/platform/brew"
)

type TrendClass string

const (
	TrendImproving TrendClass = "improving"
	TrendStable    TrendClass = "stable"
	TrendDeclining TrendClass = "declining"
)

// HalfSummary describes one chronological half of the analyzed window.
type HalfSummary struct {
	Shots      int
	MeanRatio  float64
	RatioShots int
	MeanTime   float64
	TimedShots int
}

type ShotTrends struct {
	SampleSize   int
	Earlier      HalfSummary
	Later        HalfSummary
	RatioDelta   float64
	TimeDelta    float64
	Class        TrendClass
	ShotsPerDay  float64
	DaysAnalyzed int
}

// AnalyzeTrends splits the window into an earlier and a later half (the
// earlier half takes the extra shot on odd counts) and compares mean brew
// ratio and mean extraction time between them. Requires samples in
// chronological order and at least brew.MinSamplesTrends of them.
func AnalyzeTrends(samples []Sample) (ShotTrends, bool) {
	if len(samples) < brew.MinSamplesTrends {
		return ShotTrends{}, false
	}

	split := (len(samples) + 1) / 2
	earlier := summarize(samples[:split])
	later := summarize(samples[split:])

	trends := ShotTrends{
		SampleSize: len(samples),
		Earlier:    earlier,
		Later:      later,
		RatioDelta: later.MeanRatio - earlier.MeanRatio,
		TimeDelta:  later.MeanTime - earlier.MeanTime,
	}
	trends.Class = classify(earlier, later)

	span := samples[len(samples)-1].PulledAt.Sub(samples[0].PulledAt)
	days := int(math.Ceil(span.Hours() / 24))
	if days < 1 {
		days = 1
	}
	trends.DaysAnalyzed = days
	trends.ShotsPerDay = float64(len(samples)) / float64(days)
	return trends, true
}

func summarize(samples []Sample) HalfSummary {
	summary := HalfSummary{Shots: len(samples)}
	ratioSum, timeSum := 0.0, 0.0
	for _, sample := range samples {
		if sample.DoseGrams > 0 {
			ratioSum += sample.YieldGrams / sample.DoseGrams
			summary.RatioShots++
		}
		if sample.ExtractionSeconds != nil {
			timeSum += *sample.ExtractionSeconds
			summary.TimedShots++
		}
	}
	if summary.RatioShots > 0 {
		summary.MeanRatio = ratioSum / float64(summary.RatioShots)
	}
	if summary.TimedShots > 0 {
		summary.MeanTime = timeSum / float64(summary.TimedShots)
	}
	return summary
}

func classify(earlier, later HalfSummary) TrendClass {
	ratioDelta := later.MeanRatio - earlier.MeanRatio
	timeDelta := later.MeanTime - earlier.MeanTime

	comparableRatio := earlier.RatioShots > 0 && later.RatioShots > 0
	comparableTime := earlier.TimedShots > 0 && later.TimedShots > 0

	stableRatio := !comparableRatio || math.Abs(ratioDelta) < brew.TrendStableRatioDelta
	stableTime := !comparableTime || math.Abs(timeDelta) < brew.TrendStableTimeDelta
	if stableRatio && stableTime {
		return TrendStable
	}

	// Improving means every comparable metric moved toward its optimal band.
	ratioImproving := !comparableRatio || towardBand(earlier.MeanRatio, later.MeanRatio, brew.RatioOptimalMin, brew.RatioOptimalMax)
	timeImproving := !comparableTime || towardBand(earlier.MeanTime, later.MeanTime, brew.ExtractionOptimalMinSec, brew.ExtractionOptimalMaxSec)
	if ratioImproving && timeImproving {
		return TrendImproving
	}
	return TrendDeclining
}

func towardBand(earlier, later, lo, hi float64) bool {
	return bandDistance(later, lo, hi) <= bandDistance(earlier, lo, hi)
}

func bandDistance(value, lo, hi float64) float64 {
	switch {
	case value < lo:
		return lo - value
	case value > hi:
		return value - hi
	default:
		return 0
	}
}
