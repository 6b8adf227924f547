package in

import (
	"context"

	"brewlog/internal/modules/stats/dto"
	statsin "brewlog/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Ratio(ctx context.Context, beanID string) (dto.RatioAnalysisOutput, error) {
	return h.usecase.AnalyzeRatio(ctx, beanID)
}

func (h CLIHandler) Time(ctx context.Context, beanID string) (dto.TimeAnalysisOutput, error) {
	return h.usecase.AnalyzeTime(ctx, beanID)
}

func (h CLIHandler) Trends(ctx context.Context, beanID string) (dto.TrendsOutput, error) {
	return h.usecase.AnalyzeTrends(ctx, beanID)
}
