package service

import (
	"context"
	"errors"
	"math"

	"brewlog/internal/modules/advisor/domain"
	advisorout "brewlog/internal/modules/advisor/port/out"
	"brewlog/internal/platform/brew"
	"brewlog/internal/platform/clock"
	apperrors "brewlog/internal/platform/errors"
	"brewlog/internal/platform/id"
)

type AdvisorService struct {
	clock clock.Clock
	idGen id.Generator
	store advisorout.AdviceStore
}

func NewAdvisorService(clock clock.Clock, idGen id.Generator, store advisorout.AdviceStore) *AdvisorService {
	return &AdvisorService{clock: clock, idGen: idGen, store: store}
}

// Advise is the pure recommendation surface.
func (s *AdvisorService) Advise(sample domain.Sample, scale domain.Scale) (domain.Advice, error) {
	return domain.Recommend(sample, scale)
}

// CreateForShot wraps advice into a persisted record keyed uniquely to the
// shot.
func (s *AdvisorService) CreateForShot(ctx context.Context, shotID, beanID string, advice domain.Advice) (domain.Record, error) {
	record := domain.Record{
		ID:               s.idGen.New(),
		ShotID:           shotID,
		BeanID:           beanID,
		SuggestedSetting: advice.SuggestedSetting,
		Direction:        advice.Direction,
		Steps:            advice.Steps,
		Confidence:       advice.Confidence,
		Reason:           advice.Reason,
		TimeDeviation:    advice.TimeDeviation,
		TasteIssue:       advice.TasteIssue,
		WasFollowed:      false,
		CreatedAt:        s.clock.Now(),
	}
	if err := record.Validate(); err != nil {
		return domain.Record{}, err
	}
	if err := s.store.Save(ctx, record); err != nil {
		return domain.Record{}, err
	}
	return record, nil
}

// EvaluateFollowThrough finds the bean's most recent recommendation made for
// an earlier shot and marks it followed when the new setting lands within
// tolerance. The new shot's own recommendation is never a candidate.
func (s *AdvisorService) EvaluateFollowThrough(ctx context.Context, beanID, newShotID string, newSetting float64) (domain.Record, bool, error) {
	history, err := s.store.HistoryForBean(ctx, beanID)
	if err != nil {
		return domain.Record{}, false, err
	}
	var prior *domain.Record
	for idx := range history {
		if history[idx].ShotID != newShotID {
			prior = &history[idx]
			break
		}
	}
	if prior == nil {
		return domain.Record{}, false, nil
	}
	followed := math.Abs(newSetting-prior.SuggestedSetting) <= brew.FollowToleranceGrindUnits
	if followed && !prior.WasFollowed {
		if _, err := s.store.MarkFollowed(ctx, prior.ID); err != nil {
			return domain.Record{}, false, err
		}
		prior.WasFollowed = true
	}
	return *prior, true, nil
}

// Guidance is a pure query: the recommendation for the bean's most recent
// shot. No cached per-bean state exists to drift from shot history.
func (s *AdvisorService) Guidance(ctx context.Context, beanID string) (domain.Record, error) {
	return s.store.LatestForBean(ctx, beanID)
}

// Adherence summarizes how often past recommendations were followed, broken
// down by confidence tier.
func (s *AdvisorService) Adherence(ctx context.Context, beanID string) ([]domain.Record, error) {
	history, err := s.store.HistoryForBean(ctx, beanID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return history, nil
}

func (s *AdvisorService) DropForShot(ctx context.Context, shotID string) error {
	return s.store.DeleteByShot(ctx, shotID)
}
