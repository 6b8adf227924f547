package in

import (
	"context"

	"brewlog/internal/modules/grinder/dto"
)

type Usecase interface {
	Set(ctx context.Context, input dto.SetInput) (dto.ScaleOutput, error)
	Get(ctx context.Context) (dto.ScaleOutput, error)
}
