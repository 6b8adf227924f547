package in

import (
	"context"

	"brewlog/internal/modules/stats/dto"
)

// Usecase computes read-only projections over shot history. An empty bean
// id analyzes the whole journal.
type Usecase interface {
	AnalyzeRatio(ctx context.Context, beanID string) (dto.RatioAnalysisOutput, error)
	AnalyzeTime(ctx context.Context, beanID string) (dto.TimeAnalysisOutput, error)
	AnalyzeTrends(ctx context.Context, beanID string) (dto.TrendsOutput, error)
}
