package domain

import (
	"fmt"
	"strings"
	"time"
)

const SchemaVersion = 1

type Taste string

const (
	TasteSour    Taste = "sour"
	TastePerfect Taste = "perfect"
	TasteBitter  Taste = "bitter"
)

type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthStrong Strength = "strong"
)

// Shot is one completed extraction. Taste and Strength may be attached or
// edited after the fact; everything else is written once.
type Shot struct {
	ID                string
	BeanID            string
	DoseGrams         float64
	YieldGrams        float64
	ExtractionSeconds *float64
	GrindSetting      float64
	Notes             string
	Taste             Taste
	Strength          Strength
	PulledAt          time.Time
}

func (t Taste) Validate() error {
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

func (s Shot) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(s.BeanID) == "" {
		return fmt.Errorf("bean id is required")
	}
	if s.DoseGrams <= 0 {
		return fmt.Errorf("dose must be positive, got %.1fg", s.DoseGrams)
	}
	if s.YieldGrams < s.DoseGrams {
		return fmt.Errorf("yield %.1fg must be at least the dose %.1fg", s.YieldGrams, s.DoseGrams)
	}
	if s.ExtractionSeconds != nil && *s.ExtractionSeconds <= 0 {
		return fmt.Errorf("extraction time must be positive, got %.1fs", *s.ExtractionSeconds)
	}
	if s.Taste != "" {
		if err := s.Taste.Validate(); err != nil {
			return err
		}
	}
	if s.Strength != "" {
		if err := s.Strength.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Ratio is yield over dose. Derived, never stored.
func (s Shot) Ratio() float64 {
	if s.DoseGrams == 0 {
		return 0
	}
	return s.YieldGrams / s.DoseGrams
}
