package dto

import "time"

type SetInput struct {
	ScaleMin float64
	ScaleMax float64
	StepSize float64
}

type ScaleOutput struct {
	ScaleMin  float64
	ScaleMax  float64
	StepSize  float64
	Points    int
	UpdatedAt time.Time
}
