package service

import (
	"context"
	"fmt"

	"brewlog/internal/modules/shot/domain"
	shotout "brewlog/internal/modules/shot/port/out"
	"brewlog/internal/platform/clock"
	"brewlog/internal/platform/id"
)

type ShotService struct {
	clock clock.Clock
	idGen id.Generator
	store shotout.ShotStore
}

func NewShotService(clock clock.Clock, idGen id.Generator, store shotout.ShotStore) *ShotService {
	return &ShotService{clock: clock, idGen: idGen, store: store}
}

func (s *ShotService) Record(ctx context.Context, beanID string, dose, yield float64, extractionSeconds *float64, grindSetting float64, notes string, taste domain.Taste, strength domain.Strength) (domain.Shot, error) {
	shot := domain.Shot{
		ID:                s.idGen.New(),
		BeanID:            beanID,
		DoseGrams:         dose,
		YieldGrams:        yield,
		ExtractionSeconds: extractionSeconds,
		GrindSetting:      grindSetting,
		Notes:             notes,
		Taste:             taste,
		Strength:          strength,
		PulledAt:          s.clock.Now(),
	}
	if err := shot.Validate(); err != nil {
		return domain.Shot{}, err
	}
	if err := s.store.Save(ctx, shot); err != nil {
		return domain.Shot{}, err
	}
	return shot, nil
}

func (s *ShotService) Taste(ctx context.Context, shotID string, taste domain.Taste, strength domain.Strength) (domain.Shot, error) {
	if err := taste.Validate(); err != nil {
		return domain.Shot{}, err
	}
	if strength != "" {
		if err := strength.Validate(); err != nil {
			return domain.Shot{}, err
		}
	}
	shot, err := s.store.FindByID(ctx, shotID)
	if err != nil {
		return domain.Shot{}, err
	}
	if err := s.store.UpdateTasting(ctx, shotID, taste, strength); err != nil {
		return domain.Shot{}, err
	}
	shot.Taste = taste
	shot.Strength = strength
	return shot, nil
}

func (s *ShotService) Get(ctx context.Context, shotID string) (domain.Shot, error) {
	return s.store.FindByID(ctx, shotID)
}

func (s *ShotService) List(ctx context.Context, beanID string, limit int) ([]domain.Shot, error) {
	if beanID == "" {
		return nil, fmt.Errorf("bean id is required")
	}
	return s.store.ListByBean(ctx, beanID, limit)
}

func (s *ShotService) History(ctx context.Context, beanID string) ([]domain.Shot, error) {
	return s.store.History(ctx, beanID)
}

func (s *ShotService) Delete(ctx context.Context, shotID string) error {
	if _, err := s.store.FindByID(ctx, shotID); err != nil {
		return err
	}
	return s.store.Delete(ctx, shotID)
}
