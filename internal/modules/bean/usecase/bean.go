package usecase

import (
	"context"

	"brewlog/internal/modules/bean/domain"
	"brewlog/internal/modules/bean/dto"
	beanin "brewlog/internal/modules/bean/port/in"
	"brewlog/internal/modules/bean/service"
)

type Interactor struct {
	svc *service.BeanService
}

func NewInteractor(svc *service.BeanService) beanin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.BeanOutput, error) {
	bean, path, err := i.svc.Add(ctx, input.Name, input.Roaster, domain.RoastLevel(input.Roast), input.Origin, input.Tags)
	if err != nil {
		return dto.BeanOutput{}, err
	}
	return dto.BeanOutput{
		ID:       bean.ID,
		Name:     bean.Name,
		Roaster:  bean.Roaster,
		Roast:    string(bean.Roast),
		Slug:     bean.Slug,
		NotePath: path,
	}, nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.BeanOutput, error) {
	beans, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BeanOutput, 0, len(beans))
	for _, bean := range beans {
		out = append(out, dto.BeanOutput{
			ID:       bean.ID,
			Name:     bean.Name,
			Roaster:  bean.Roaster,
			Roast:    string(bean.Roast),
			Slug:     bean.Slug,
			NotePath: bean.NotePath,
		})
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, idOrSlug string) (dto.BeanDetailOutput, error) {
	bean, err := i.svc.Get(ctx, idOrSlug)
	if err != nil {
		return dto.BeanDetailOutput{}, err
	}
	return dto.BeanDetailOutput{
		ID:       bean.ID,
		Name:     bean.Name,
		Roaster:  bean.Roaster,
		Roast:    string(bean.Roast),
		Origin:   bean.Origin,
		Slug:     bean.Slug,
		Tags:     bean.Tags,
		NotePath: bean.NotePath,
		AddedAt:  bean.AddedAt,
	}, nil
}

func (i *Interactor) Reindex(ctx context.Context, _ dto.ReindexInput) error {
	return i.svc.Reindex(ctx)
}
