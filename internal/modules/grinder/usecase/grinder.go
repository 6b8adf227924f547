package usecase

import (
	"context"

	"brewlog/internal/modules/grinder/domain"
	"brewlog/internal/modules/grinder/dto"
	grinderin "brewlog/internal/modules/grinder/port/in"
	"brewlog/internal/modules/grinder/service"
)

type Interactor struct {
	svc *service.GrinderService
}

func NewInteractor(svc *service.GrinderService) grinderin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Set(ctx context.Context, input dto.SetInput) (dto.ScaleOutput, error) {
	scale, err := i.svc.Set(ctx, input.ScaleMin, input.ScaleMax, input.StepSize)
	if err != nil {
		return dto.ScaleOutput{}, err
	}
	return toOutput(scale), nil
}

func (i *Interactor) Get(ctx context.Context) (dto.ScaleOutput, error) {
	scale, err := i.svc.Get(ctx)
	if err != nil {
		return dto.ScaleOutput{}, err
	}
	return toOutput(scale), nil
}

func toOutput(scale domain.Scale) dto.ScaleOutput {
	return dto.ScaleOutput{
		ScaleMin:  scale.ScaleMin,
		ScaleMax:  scale.ScaleMax,
		StepSize:  scale.StepSize,
		Points:    scale.Points(),
		UpdatedAt: scale.UpdatedAt,
	}
}
