package domain

import (
	"fmt"
	"math"
	"time"
)

const SchemaVersion = 1

// Scale describes the usable range of the installation's grinder: the lowest
// and highest markings and the smallest meaningful increment between them.
type Scale struct {
	ScaleMin  float64   `json:"scale_min"`
	ScaleMax  float64   `json:"scale_max"`
	StepSize  float64   `json:"step_size"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s Scale) Validate() error {
	if s.ScaleMin >= s.ScaleMax {
		return fmt.Errorf("scale minimum %.2f must be below maximum %.2f", s.ScaleMin, s.ScaleMax)
	}
	if s.StepSize <= 0 {
		return fmt.Errorf("step size must be positive, got %.2f", s.StepSize)
	}
	span := s.ScaleMax - s.ScaleMin
	if s.StepSize > span {
		return fmt.Errorf("step size %.2f exceeds scale range %.2f", s.StepSize, span)
	}
	steps := span / s.StepSize
	if math.Abs(steps-math.Round(steps)) > 0.01 {
		return fmt.Errorf("step size %.2f does not evenly divide range %.2f", s.StepSize, span)
	}
	return nil
}

// Snap clamps value into the scale and rounds it to the nearest discrete
// point min, min+step, min+2*step, ... max.
func (s Scale) Snap(value float64) float64 {
	if value < s.ScaleMin {
		return s.ScaleMin
	}
	if value > s.ScaleMax {
		return s.ScaleMax
	}
	steps := math.Round((value - s.ScaleMin) / s.StepSize)
	snapped := s.ScaleMin + steps*s.StepSize
	if snapped > s.ScaleMax {
		snapped = s.ScaleMax
	}
	return snapped
}

// Points reports how many discrete settings the scale offers.
func (s Scale) Points() int {
	return int(math.Round((s.ScaleMax-s.ScaleMin)/s.StepSize)) + 1
}
