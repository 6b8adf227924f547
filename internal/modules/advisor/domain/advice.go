package domain

import (
	"fmt"
	"math"

	"brewlog/internal/platform/brew"
)

type Direction string

const (
	DirectionFiner    Direction = "finer"
	DirectionCoarser  Direction = "coarser"
	DirectionNoChange Direction = "no_change"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ReasonCode identifies which signal drove an adjustment.
type ReasonCode string

const (
	ReasonTasteSour     ReasonCode = "taste_sour"
	ReasonTasteBitter   ReasonCode = "taste_bitter"
	ReasonTasteBalanced ReasonCode = "taste_balanced"
	ReasonTimeFast      ReasonCode = "time_fast"
	ReasonTimeSlow      ReasonCode = "time_slow"
	ReasonTimeInBand    ReasonCode = "time_in_band"
	ReasonNoSignal      ReasonCode = "no_signal"
)

// Sample is the advisor's view of the shot it advises on.
type Sample struct {
	GrindSetting      float64
	ExtractionSeconds *float64
	Taste             TasteClass
	Strength          Strength
}

// Scale is the advisor's view of the grinder configuration. The grinder
// module validates configurations at creation time; Recommend still refuses
// a nonsensical scale rather than clamping into garbage.
type Scale struct {
	Min  float64
	Max  float64
	Step float64
}

// Advice is the complete grind adjustment recommendation for one shot.
type Advice struct {
	SuggestedSetting float64
	Direction        Direction
	Steps            int
	Confidence       Confidence
	Reason           ReasonCode
	// TimeDeviation is signed seconds from the nearest edge of the optimal
	// extraction band: negative when too fast, positive when too slow, zero
	// inside the band or when the shot carries no timing.
	TimeDeviation float64
	TasteIssue    TasteClass
}

// Recommend converts the most recent shot for a bean into a bounded,
// confidence-rated grind adjustment. Explicit taste feedback is
// authoritative; timing is the fallback signal; with neither, the advice is
// no-change at low confidence. Deterministic, no side effects.
func Recommend(sample Sample, scale Scale) (Advice, error) {
	if scale.Min >= scale.Max || scale.Step <= 0 {
		return Advice{}, fmt.Errorf("invalid grinder scale min=%.2f max=%.2f step=%.2f", scale.Min, scale.Max, scale.Step)
	}

	deviation := 0.0
	if sample.ExtractionSeconds != nil {
		deviation = timeDeviation(*sample.ExtractionSeconds)
	}

	advice := Advice{TimeDeviation: deviation}
	switch {
	case sample.Taste != "":
		advice.Direction = directionForTaste(sample.Taste)
		advice.Confidence = ConfidenceHigh
		advice.Reason = reasonForTaste(sample.Taste)
		if sample.Taste != TastePerfect {
			advice.TasteIssue = sample.Taste
		}
	case sample.ExtractionSeconds != nil:
		predicted := PredictTaste(*sample.ExtractionSeconds)
		advice.Direction = directionForTaste(predicted)
		advice.Confidence = timingConfidence(deviation)
		advice.Reason = reasonForTiming(predicted)
		if predicted != TastePerfect {
			advice.TasteIssue = predicted
		}
	default:
		// No taste and no timing: never fabricate a direction.
		advice.Direction = DirectionNoChange
		advice.Confidence = ConfidenceLow
		advice.Reason = ReasonNoSignal
	}

	advice.Steps = stepCount(advice.Direction, deviation)
	advice.SuggestedSetting = suggest(sample.GrindSetting, advice.Direction, advice.Steps, scale)
	return advice, nil
}

func timeDeviation(seconds float64) float64 {
	switch {
	case seconds < brew.ExtractionOptimalMinSec:
		return seconds - brew.ExtractionOptimalMinSec
	case seconds > brew.ExtractionOptimalMaxSec:
		return seconds - brew.ExtractionOptimalMaxSec
	default:
		return 0
	}
}

func directionForTaste(taste TasteClass) Direction {
	switch taste {
	case TasteSour:
		return DirectionFiner
	case TasteBitter:
		return DirectionCoarser
	default:
		return DirectionNoChange
	}
}

func reasonForTaste(taste TasteClass) ReasonCode {
	switch taste {
	case TasteSour:
		return ReasonTasteSour
	case TasteBitter:
		return ReasonTasteBitter
	default:
		return ReasonTasteBalanced
	}
}

func reasonForTiming(predicted TasteClass) ReasonCode {
	switch predicted {
	case TasteSour:
		return ReasonTimeFast
	case TasteBitter:
		return ReasonTimeSlow
	default:
		return ReasonTimeInBand
	}
}

// timingConfidence caps timing-derived advice at medium and degrades to low
// when the shot is barely outside the optimal band.
func timingConfidence(deviation float64) Confidence {
	if deviation != 0 && math.Abs(deviation) <= brew.BorderlineDeviationSec {
		return ConfidenceLow
	}
	return ConfidenceMedium
}

// stepCount scales the move with the size of the timing deviation. A taste
// signal without timing moves the default single step.
func stepCount(direction Direction, deviation float64) int {
	if direction == DirectionNoChange {
		return 0
	}
	abs := math.Abs(deviation)
	switch {
	case abs == 0:
		return 1
	case abs <= brew.SmallDeviationSec:
		return 1
	case abs <= brew.LargeDeviationSec:
		return 2
	default:
		return brew.MaxAdjustmentSteps
	}
}

// suggest moves the previous setting by steps in the adjustment direction,
// then snaps to a discrete point clamped inside the scale. Finer means a
// lower value on the scale.
func suggest(previous float64, direction Direction, steps int, scale Scale) float64 {
	target := previous
	switch direction {
	case DirectionFiner:
		target = previous - float64(steps)*scale.Step
	case DirectionCoarser:
		target = previous + float64(steps)*scale.Step
	}
	return snap(target, scale)
}

func snap(value float64, scale Scale) float64 {
	if value < scale.Min {
		return scale.Min
	}
	if value > scale.Max {
		return scale.Max
	}
	steps := math.Round((value - scale.Min) / scale.Step)
	snapped := scale.Min + steps*scale.Step
	if snapped > scale.Max {
		snapped = scale.Max
	}
	return snapped
}
