package in

import (
	"context"

	"brewlog/internal/modules/advisor/dto"
)

type Usecase interface {
	// Preview computes advice for a hypothetical shot without persisting
	// anything.
	Preview(ctx context.Context, sample dto.SampleInput) (dto.AdviceOutput, error)
	// CreateForShot records the recommendation for a just-saved shot and
	// refreshes the bean note's guidance block. A shot gets exactly one
	// recommendation; duplicates are rejected.
	CreateForShot(ctx context.Context, input dto.CreateInput) (dto.GuidanceOutput, error)
	// EvaluateFollowThrough checks the newest shot's setting against the
	// bean's prior recommendation. Idempotent.
	EvaluateFollowThrough(ctx context.Context, input dto.EvaluateInput) (dto.EvaluateOutput, error)
	// Guidance is the recommendation attached to the bean's most recent
	// shot, or apperrors.ErrNotFound when the bean has none.
	Guidance(ctx context.Context, beanID string) (dto.GuidanceOutput, error)
	Adherence(ctx context.Context, beanID string) (dto.AdherenceOutput, error)
	// DropForShot removes a shot's recommendation when the shot is deleted.
	DropForShot(ctx context.Context, shotID string) error
}
