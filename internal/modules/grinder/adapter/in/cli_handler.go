package in

import (
	"context"

	"brewlog/internal/modules/grinder/dto"
	grinderin "brewlog/internal/modules/grinder/port/in"
)

type CLIHandler struct {
	usecase grinderin.Usecase
}

func NewCLIHandler(usecase grinderin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Set(ctx context.Context, scaleMin, scaleMax, stepSize float64) (dto.ScaleOutput, error) {
	return h.usecase.Set(ctx, dto.SetInput{ScaleMin: scaleMin, ScaleMax: scaleMax, StepSize: stepSize})
}

func (h CLIHandler) Get(ctx context.Context) (dto.ScaleOutput, error) {
	return h.usecase.Get(ctx)
}
