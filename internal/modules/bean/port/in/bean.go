package in

import (
	"context"

	"brewlog/internal/modules/bean/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.AddInput) (dto.BeanOutput, error)
	List(ctx context.Context) ([]dto.BeanOutput, error)
	Get(ctx context.Context, idOrSlug string) (dto.BeanDetailOutput, error)
	Reindex(ctx context.Context, input dto.ReindexInput) error
}
