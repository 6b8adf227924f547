package out

import (
	"context"

	"brewlog/internal/modules/bean/domain"
)

type BeanStore interface {
	Save(ctx context.Context, document domain.BeanDocument) (string, error)
	FindByID(ctx context.Context, id string) (domain.BeanDocument, error)
	FindBySlug(ctx context.Context, slug string) (domain.BeanDocument, error)
	List(ctx context.Context) ([]domain.BeanDocument, error)
}

type BeanIndexProjector interface {
	Reset(ctx context.Context) error
	UpsertBean(ctx context.Context, bean domain.Bean) error
}
