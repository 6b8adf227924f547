package service

import (
	"context"

	"brewlog/internal/modules/grinder/domain"
	grinderout "brewlog/internal/modules/grinder/port/out"
	"brewlog/internal/platform/clock"
)

type GrinderService struct {
	clock clock.Clock
	store grinderout.ScaleStore
}

func NewGrinderService(clock clock.Clock, store grinderout.ScaleStore) *GrinderService {
	return &GrinderService{clock: clock, store: store}
}

func (s *GrinderService) Set(ctx context.Context, scaleMin, scaleMax, stepSize float64) (domain.Scale, error) {
	scale := domain.Scale{
		ScaleMin:  scaleMin,
		ScaleMax:  scaleMax,
		StepSize:  stepSize,
		UpdatedAt: s.clock.Now(),
	}
	if err := scale.Validate(); err != nil {
		return domain.Scale{}, err
	}
	if err := s.store.Save(ctx, scale); err != nil {
		return domain.Scale{}, err
	}
	return scale, nil
}

func (s *GrinderService) Get(ctx context.Context) (domain.Scale, error) {
	return s.store.Load(ctx)
}
