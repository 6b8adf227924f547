package domain

import (
	"fmt"
	"strings"
	"time"
)

const SchemaVersion = 1

// Record is the persisted recommendation for one specific shot. It is
// immutable once written except for WasFollowed, which flips to true at most
// once when the bean's next shot lands within tolerance of the suggestion.
type Record struct {
	ID               string
	ShotID           string
	BeanID           string
	SuggestedSetting float64
	Direction        Direction
	Steps            int
	Confidence       Confidence
	Reason           ReasonCode
	TimeDeviation    float64
	TasteIssue       TasteClass
	WasFollowed      bool
	CreatedAt        time.Time
	Meta             map[string]string
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(r.ShotID) == "" {
		return fmt.Errorf("shot id is required")
	}
	if strings.TrimSpace(r.BeanID) == "" {
		return fmt.Errorf("bean id is required")
	}
	switch r.Direction {
	case DirectionFiner, DirectionCoarser, DirectionNoChange:
	default:
		return fmt.Errorf("unsupported direction %q", string(r.Direction))
	}
	switch r.Confidence {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
	default:
		return fmt.Errorf("unsupported confidence %q", string(r.Confidence))
	}
	return nil
}
