package dto

import "time"

type RecordInput struct {
	Bean              string // bean id or slug
	DoseGrams         float64
	YieldGrams        float64
	ExtractionSeconds *float64
	GrindSetting      float64
	Notes             string
	Taste             string
	Strength          string
}

type TasteInput struct {
	ShotID   string
	Taste    string
	Strength string
}

type ShotOutput struct {
	ID                string
	BeanID            string
	DoseGrams         float64
	YieldGrams        float64
	Ratio             float64
	ExtractionSeconds *float64
	GrindSetting      float64
	Notes             string
	Taste             string
	Strength          string
	PulledAt          time.Time
}

// GuidanceSummary is the advice produced for the shot just recorded.
type GuidanceSummary struct {
	RecommendationID string
	SuggestedSetting float64
	Direction        string
	Steps            int
	Confidence       string
	Reason           string
	TimeDeviation    float64
	TasteIssue       string
}

type RecordOutput struct {
	Shot     ShotOutput
	Guidance GuidanceSummary
	// FollowEvaluated is true when the bean had a prior recommendation to
	// compare this shot's setting against.
	FollowEvaluated bool
	FollowedPrior   bool
	PriorSuggested  float64
}
