package dto

import "time"

// SampleInput carries the shot fields the advisor needs. ExtractionSeconds
// is nil when the shot was not timed; Taste and Strength are empty when the
// user gave no feedback.
type SampleInput struct {
	GrindSetting      float64
	ExtractionSeconds *float64
	Taste             string
	Strength          string
}

type AdviceOutput struct {
	SuggestedSetting float64
	Direction        string
	Steps            int
	Confidence       string
	Reason           string
	TimeDeviation    float64
	TasteIssue       string
}

type CreateInput struct {
	ShotID   string
	BeanID   string
	BeanSlug string
	Sample   SampleInput
}

type EvaluateInput struct {
	BeanID          string
	NewShotID       string
	NewGrindSetting float64
}

type EvaluateOutput struct {
	Evaluated        bool
	Followed         bool
	RecommendationID string
	SuggestedSetting float64
}

type GuidanceOutput struct {
	RecommendationID string
	ShotID           string
	BeanID           string
	SuggestedSetting float64
	Direction        string
	Steps            int
	Confidence       string
	Reason           string
	TimeDeviation    float64
	TasteIssue       string
	WasFollowed      bool
	CreatedAt        time.Time
}

type ConfidenceAdherence struct {
	Confidence string
	Total      int
	Followed   int
	Rate       float64
}

type AdherenceOutput struct {
	BeanID       string
	Total        int
	Followed     int
	Rate         float64
	ByConfidence []ConfidenceAdherence
}
