package usecase

import (
	"context"
	"fmt"
	"strings"

	"brewlog/internal/modules/advisor/domain"
	"brewlog/internal/modules/advisor/dto"
	advisorin "brewlog/internal/modules/advisor/port/in"
	advisorout "brewlog/internal/modules/advisor/port/out"
	"brewlog/internal/modules/advisor/service"
	grinderin "brewlog/internal/modules/grinder/port/in"
)

type Interactor struct {
	svc       *service.AdvisorService
	grinder   grinderin.Usecase
	projector advisorout.GuidanceProjector
}

func NewInteractor(svc *service.AdvisorService, grinder grinderin.Usecase, projector advisorout.GuidanceProjector) advisorin.Usecase {
	return &Interactor{svc: svc, grinder: grinder, projector: projector}
}

func (i *Interactor) Preview(ctx context.Context, sample dto.SampleInput) (dto.AdviceOutput, error) {
	domainSample, err := toSample(sample)
	if err != nil {
		return dto.AdviceOutput{}, err
	}
	scale, err := i.scale(ctx)
	if err != nil {
		return dto.AdviceOutput{}, err
	}
	advice, err := i.svc.Advise(domainSample, scale)
	if err != nil {
		return dto.AdviceOutput{}, err
	}
	return toAdviceOutput(advice), nil
}

func (i *Interactor) CreateForShot(ctx context.Context, input dto.CreateInput) (dto.GuidanceOutput, error) {
	if strings.TrimSpace(input.ShotID) == "" || strings.TrimSpace(input.BeanID) == "" {
		return dto.GuidanceOutput{}, fmt.Errorf("shot id and bean id are required")
	}
	domainSample, err := toSample(input.Sample)
	if err != nil {
		return dto.GuidanceOutput{}, err
	}
	scale, err := i.scale(ctx)
	if err != nil {
		return dto.GuidanceOutput{}, err
	}
	advice, err := i.svc.Advise(domainSample, scale)
	if err != nil {
		return dto.GuidanceOutput{}, err
	}
	record, err := i.svc.CreateForShot(ctx, input.ShotID, input.BeanID, advice)
	if err != nil {
		return dto.GuidanceOutput{}, err
	}
	if i.projector != nil && input.BeanSlug != "" {
		if err := i.projector.Project(ctx, advisorout.GuidanceProjection{
			BeanSlug:         input.BeanSlug,
			SuggestedSetting: record.SuggestedSetting,
			Direction:        record.Direction,
			Steps:            record.Steps,
			Confidence:       record.Confidence,
			Reason:           record.Reason,
			CreatedAt:        record.CreatedAt,
		}); err != nil {
			return dto.GuidanceOutput{}, err
		}
	}
	return toGuidanceOutput(record), nil
}

func (i *Interactor) EvaluateFollowThrough(ctx context.Context, input dto.EvaluateInput) (dto.EvaluateOutput, error) {
	record, evaluated, err := i.svc.EvaluateFollowThrough(ctx, input.BeanID, input.NewShotID, input.NewGrindSetting)
	if err != nil {
		return dto.EvaluateOutput{}, err
	}
	if !evaluated {
		return dto.EvaluateOutput{}, nil
	}
	return dto.EvaluateOutput{
		Evaluated:        true,
		Followed:         record.WasFollowed,
		RecommendationID: record.ID,
		SuggestedSetting: record.SuggestedSetting,
	}, nil
}

func (i *Interactor) Guidance(ctx context.Context, beanID string) (dto.GuidanceOutput, error) {
	record, err := i.svc.Guidance(ctx, beanID)
	if err != nil {
		return dto.GuidanceOutput{}, err
	}
	return toGuidanceOutput(record), nil
}

func (i *Interactor) Adherence(ctx context.Context, beanID string) (dto.AdherenceOutput, error) {
	history, err := i.svc.Adherence(ctx, beanID)
	if err != nil {
		return dto.AdherenceOutput{}, err
	}
	out := dto.AdherenceOutput{BeanID: beanID}
	byConfidence := map[domain.Confidence]*dto.ConfidenceAdherence{}
	for _, record := range history {
		out.Total++
		if record.WasFollowed {
			out.Followed++
		}
		bucket, ok := byConfidence[record.Confidence]
		if !ok {
			bucket = &dto.ConfidenceAdherence{Confidence: string(record.Confidence)}
			byConfidence[record.Confidence] = bucket
		}
		bucket.Total++
		if record.WasFollowed {
			bucket.Followed++
		}
	}
	if out.Total > 0 {
		out.Rate = float64(out.Followed) / float64(out.Total)
	}
	for _, tier := range []domain.Confidence{domain.ConfidenceHigh, domain.ConfidenceMedium, domain.ConfidenceLow} {
		bucket, ok := byConfidence[tier]
		if !ok {
			continue
		}
		if bucket.Total > 0 {
			bucket.Rate = float64(bucket.Followed) / float64(bucket.Total)
		}
		out.ByConfidence = append(out.ByConfidence, *bucket)
	}
	return out, nil
}

func (i *Interactor) DropForShot(ctx context.Context, shotID string) error {
	return i.svc.DropForShot(ctx, shotID)
}

func (i *Interactor) scale(ctx context.Context) (domain.Scale, error) {
	cfg, err := i.grinder.Get(ctx)
	if err != nil {
		return domain.Scale{}, err
	}
	return domain.Scale{Min: cfg.ScaleMin, Max: cfg.ScaleMax, Step: cfg.StepSize}, nil
}

func toSample(input dto.SampleInput) (domain.Sample, error) {
	sample := domain.Sample{
		GrindSetting:      input.GrindSetting,
		ExtractionSeconds: input.ExtractionSeconds,
	}
	if input.Taste != "" {
		taste := domain.TasteClass(input.Taste)
		if err := taste.Validate(); err != nil {
			return domain.Sample{}, err
		}
		sample.Taste = taste
	}
	if input.Strength != "" {
		strength := domain.Strength(input.Strength)
		if err := strength.Validate(); err != nil {
			return domain.Sample{}, err
		}
		sample.Strength = strength
	}
	return sample, nil
}

func toAdviceOutput(advice domain.Advice) dto.AdviceOutput {
	return dto.AdviceOutput{
		SuggestedSetting: advice.SuggestedSetting,
		Direction:        string(advice.Direction),
		Steps:            advice.Steps,
		Confidence:       string(advice.Confidence),
		Reason:           string(advice.Reason),
		TimeDeviation:    advice.TimeDeviation,
		TasteIssue:       string(advice.TasteIssue),
	}
}

func toGuidanceOutput(record domain.Record) dto.GuidanceOutput {
	return dto.GuidanceOutput{
		RecommendationID: record.ID,
		ShotID:           record.ShotID,
		BeanID:           record.BeanID,
		SuggestedSetting: record.SuggestedSetting,
		Direction:        string(record.Direction),
		Steps:            record.Steps,
		Confidence:       string(record.Confidence),
		Reason:           string(record.Reason),
		TimeDeviation:    record.TimeDeviation,
		TasteIssue:       string(record.TasteIssue),
		WasFollowed:      record.WasFollowed,
		CreatedAt:        record.CreatedAt,
	}
}
