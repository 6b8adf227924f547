package domain

import (
	"fmt"

	"brewlog/internal/platform/brew"
)

// TasteClass is the primary taste outcome of a shot.
type TasteClass string

const (
	TasteSour    TasteClass = "sour"
	TastePerfect TasteClass = "perfect"
	TasteBitter  TasteClass = "bitter"
)

// Strength is the optional secondary qualifier.
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthStrong Strength = "strong"
)

func (t TasteClass) Validate() error {
	switch t {
	case TasteSour, TastePerfect, TasteBitter:
		return nil
	default:
		return fmt.Errorf("unsupported taste %q", string(t))
	}
}

func (s Strength) Validate() error {
	switch s {
	case StrengthWeak, StrengthStrong:
		return nil
	default:
		return fmt.Errorf("unsupported strength %q", string(s))
	}
}

// PredictTaste maps extraction time onto the expected taste outcome: shots
// faster than the optimal band under-extract toward sour, slower shots
// over-extract toward bitter.
func PredictTaste(extractionSeconds float64) TasteClass {
	switch {
	case extractionSeconds < brew.ExtractionOptimalMinSec:
		return TasteSour
	case extractionSeconds > brew.ExtractionOptimalMaxSec:
		return TasteBitter
	default:
		return TastePerfect
	}
}
