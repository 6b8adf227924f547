package in

import (
	"context"

	"brewlog/internal/modules/shot/dto"
	shotin "brewlog/internal/modules/shot/port/in"
)

type CLIHandler struct {
	usecase shotin.Usecase
}

func NewCLIHandler(usecase shotin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Record(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error) {
	return h.usecase.Record(ctx, input)
}

func (h CLIHandler) Taste(ctx context.Context, shotID, taste, strength string) (dto.ShotOutput, error) {
	return h.usecase.Taste(ctx, dto.TasteInput{ShotID: shotID, Taste: taste, Strength: strength})
}

func (h CLIHandler) Get(ctx context.Context, shotID string) (dto.ShotOutput, error) {
	return h.usecase.Get(ctx, shotID)
}

func (h CLIHandler) List(ctx context.Context, beanID string, limit int) ([]dto.ShotOutput, error) {
	return h.usecase.List(ctx, beanID, limit)
}

func (h CLIHandler) Delete(ctx context.Context, shotID string) error {
	return h.usecase.Delete(ctx, shotID)
}
