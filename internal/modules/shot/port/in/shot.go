package in

import (
	"context"

	"brewlog/internal/modules/shot/dto"
)

type Usecase interface {
	// Record saves the shot, creates its recommendation, and evaluates
	// follow-through on the bean's prior recommendation, as one unit.
	Record(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error)
	// Taste attaches or edits taste feedback on an existing shot.
	Taste(ctx context.Context, input dto.TasteInput) (dto.ShotOutput, error)
	Get(ctx context.Context, shotID string) (dto.ShotOutput, error)
	// List returns a bean's shots newest first.
	List(ctx context.Context, beanID string, limit int) ([]dto.ShotOutput, error)
	// History returns shots in chronological order; an empty bean id means
	// the whole journal. The slice is a snapshot safe to iterate.
	History(ctx context.Context, beanID string) ([]dto.ShotOutput, error)
	// Delete removes a shot and cascades its recommendation.
	Delete(ctx context.Context, shotID string) error
}
