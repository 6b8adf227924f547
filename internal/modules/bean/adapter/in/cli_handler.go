package in

import (
	"context"

	"brewlog/internal/modules/bean/dto"
	beanin "brewlog/internal/modules/bean/port/in"
)

type CLIHandler struct {
	usecase beanin.Usecase
}

func NewCLIHandler(usecase beanin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, name, roaster, roast, origin string, tags []string) (dto.BeanOutput, error) {
	return h.usecase.Add(ctx, dto.AddInput{Name: name, Roaster: roaster, Roast: roast, Origin: origin, Tags: tags})
}

func (h CLIHandler) List(ctx context.Context) ([]dto.BeanOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, idOrSlug string) (dto.BeanDetailOutput, error) {
	return h.usecase.Get(ctx, idOrSlug)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx, dto.ReindexInput{})
}
