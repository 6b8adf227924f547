package usecase

import (
	"context"
	"fmt"
	"strings"

	advisordto "brewlog/internal/modules/advisor/dto"
	advisorin "brewlog/internal/modules/advisor/port/in"
	beanin "brewlog/internal/modules/bean/port/in"
	"brewlog/internal/modules/shot/domain"
	"brewlog/internal/modules/shot/dto"
	shotin "brewlog/internal/modules/shot/port/in"
	"brewlog/internal/modules/shot/service"
	"brewlog/internal/platform/tx"
)

type Interactor struct {
	svc     *service.ShotService
	beans   beanin.Usecase
	advisor advisorin.Usecase
	txm     tx.Manager
}

func NewInteractor(svc *service.ShotService, beans beanin.Usecase, advisor advisorin.Usecase, txm tx.Manager) shotin.Usecase {
	return &Interactor{svc: svc, beans: beans, advisor: advisor, txm: txm}
}

// Record runs the full record-shot sequence: save shot, create the shot's
// recommendation, then evaluate follow-through against the bean's prior
// recommendation. The transaction manager keeps the steps one unit so a
// saved shot never lacks its recommendation.
func (i *Interactor) Record(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error) {
	if strings.TrimSpace(input.Bean) == "" {
		return dto.RecordOutput{}, fmt.Errorf("bean is required")
	}
	bean, err := i.beans.Get(ctx, input.Bean)
	if err != nil {
		return dto.RecordOutput{}, err
	}

	out := dto.RecordOutput{}
	err = i.txm.Within(ctx, func(ctx context.Context) error {
		shot, err := i.svc.Record(ctx, bean.ID, input.DoseGrams, input.YieldGrams, input.ExtractionSeconds, input.GrindSetting, input.Notes, domain.Taste(input.Taste), domain.Strength(input.Strength))
		if err != nil {
			return err
		}
		guidance, err := i.advisor.CreateForShot(ctx, advisordto.CreateInput{
			ShotID:   shot.ID,
			BeanID:   bean.ID,
			BeanSlug: bean.Slug,
			Sample: advisordto.SampleInput{
				GrindSetting:      shot.GrindSetting,
				ExtractionSeconds: shot.ExtractionSeconds,
				Taste:             string(shot.Taste),
				Strength:          string(shot.Strength),
			},
		})
		if err != nil {
			return err
		}
		followed, err := i.advisor.EvaluateFollowThrough(ctx, advisordto.EvaluateInput{
			BeanID:          bean.ID,
			NewShotID:       shot.ID,
			NewGrindSetting: shot.GrindSetting,
		})
		if err != nil {
			return err
		}
		out = dto.RecordOutput{
			Shot: toOutput(shot),
			Guidance: dto.GuidanceSummary{
				RecommendationID: guidance.RecommendationID,
				SuggestedSetting: guidance.SuggestedSetting,
				Direction:        guidance.Direction,
				Steps:            guidance.Steps,
				Confidence:       guidance.Confidence,
				Reason:           guidance.Reason,
				TimeDeviation:    guidance.TimeDeviation,
				TasteIssue:       guidance.TasteIssue,
			},
			FollowEvaluated: followed.Evaluated,
			FollowedPrior:   followed.Followed,
			PriorSuggested:  followed.SuggestedSetting,
		}
		return nil
	})
	if err != nil {
		return dto.RecordOutput{}, err
	}
	return out, nil
}

func (i *Interactor) Taste(ctx context.Context, input dto.TasteInput) (dto.ShotOutput, error) {
	shot, err := i.svc.Taste(ctx, input.ShotID, domain.Taste(input.Taste), domain.Strength(input.Strength))
	if err != nil {
		return dto.ShotOutput{}, err
	}
	return toOutput(shot), nil
}

func (i *Interactor) Get(ctx context.Context, shotID string) (dto.ShotOutput, error) {
	shot, err := i.svc.Get(ctx, shotID)
	if err != nil {
		return dto.ShotOutput{}, err
	}
	return toOutput(shot), nil
}

func (i *Interactor) List(ctx context.Context, beanID string, limit int) ([]dto.ShotOutput, error) {
	shots, err := i.svc.List(ctx, beanID, limit)
	if err != nil {
		return nil, err
	}
	return toOutputs(shots), nil
}

func (i *Interactor) History(ctx context.Context, beanID string) ([]dto.ShotOutput, error) {
	shots, err := i.svc.History(ctx, beanID)
	if err != nil {
		return nil, err
	}
	return toOutputs(shots), nil
}

func (i *Interactor) Delete(ctx context.Context, shotID string) error {
	return i.txm.Within(ctx, func(ctx context.Context) error {
		if err := i.advisor.DropForShot(ctx, shotID); err != nil {
			return err
		}
		return i.svc.Delete(ctx, shotID)
	})
}

func toOutput(shot domain.Shot) dto.ShotOutput {
	return dto.ShotOutput{
		ID:                shot.ID,
		BeanID:            shot.BeanID,
		DoseGrams:         shot.DoseGrams,
		YieldGrams:        shot.YieldGrams,
		Ratio:             shot.Ratio(),
		ExtractionSeconds: shot.ExtractionSeconds,
		GrindSetting:      shot.GrindSetting,
		Notes:             shot.Notes,
		Taste:             string(shot.Taste),
		Strength:          string(shot.Strength),
		PulledAt:          shot.PulledAt,
	}
}

func toOutputs(shots []domain.Shot) []dto.ShotOutput {
	out := make([]dto.ShotOutput, 0, len(shots))
	for _, shot := range shots {
		out = append(out, toOutput(shot))
	}
	return out
}
