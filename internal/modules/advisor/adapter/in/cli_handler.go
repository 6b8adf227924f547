package in

import (
	"context"

	"brewlog/internal/modules/advisor/dto"
	advisorin "brewlog/internal/modules/advisor/port/in"
)

type CLIHandler struct {
	usecase advisorin.Usecase
}

func NewCLIHandler(usecase advisorin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Preview(ctx context.Context, grindSetting float64, extractionSeconds *float64, taste, strength string) (dto.AdviceOutput, error) {
	return h.usecase.Preview(ctx, dto.SampleInput{
		GrindSetting:      grindSetting,
		ExtractionSeconds: extractionSeconds,
		Taste:             taste,
		Strength:          strength,
	})
}

func (h CLIHandler) Guidance(ctx context.Context, beanID string) (dto.GuidanceOutput, error) {
	return h.usecase.Guidance(ctx, beanID)
}

func (h CLIHandler) Adherence(ctx context.Context, beanID string) (dto.AdherenceOutput, error) {
	return h.usecase.Adherence(ctx, beanID)
}
