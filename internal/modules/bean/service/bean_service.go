package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"brewlog/internal/modules/bean/domain"
	beanout "brewlog/internal/modules/bean/port/out"
	"brewlog/internal/platform/clock"
	apperrors "brewlog/internal/platform/errors"
	"brewlog/internal/platform/id"
	"brewlog/internal/platform/slug"
)

type BeanService struct {
	clock     clock.Clock
	idGen     id.Generator
	store     beanout.BeanStore
	projector beanout.BeanIndexProjector
}

func NewBeanService(clock clock.Clock, idGen id.Generator, store beanout.BeanStore, projector beanout.BeanIndexProjector) *BeanService {
	return &BeanService{clock: clock, idGen: idGen, store: store, projector: projector}
}

func (s *BeanService) Add(ctx context.Context, name, roaster string, roast domain.RoastLevel, origin string, tags []string) (domain.Bean, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Bean{}, "", fmt.Errorf("bean name is required")
	}
	if roast == "" {
		roast = domain.RoastMedium
	}
	now := s.clock.Now()
	bean := domain.Bean{
		ID:        s.idGen.New(),
		Name:      name,
		Roaster:   strings.TrimSpace(roaster),
		Roast:     roast,
		Origin:    strings.TrimSpace(origin),
		Slug:      makeSlug(name, roaster),
		Tags:      tags,
		AddedAt:   now,
		UpdatedAt: now,
	}
	if err := bean.Validate(); err != nil {
		return domain.Bean{}, "", err
	}
	if _, err := s.store.FindBySlug(ctx, bean.Slug); err == nil {
		return domain.Bean{}, "", fmt.Errorf("bean %q already exists", bean.Slug)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.Bean{}, "", err
	}
	path, err := s.store.Save(ctx, domain.BeanDocument{Bean: bean})
	if err != nil {
		return domain.Bean{}, "", err
	}
	bean.NotePath = path
	if err := s.projector.UpsertBean(ctx, bean); err != nil {
		return domain.Bean{}, "", err
	}
	return bean, path, nil
}

func (s *BeanService) List(ctx context.Context) ([]domain.Bean, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	beans := make([]domain.Bean, 0, len(docs))
	for _, doc := range docs {
		beans = append(beans, doc.Bean)
	}
	return beans, nil
}

func (s *BeanService) Get(ctx context.Context, idOrSlug string) (domain.Bean, error) {
	doc, err := s.store.FindByID(ctx, idOrSlug)
	if errors.Is(err, apperrors.ErrNotFound) {
		doc, err = s.store.FindBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return domain.Bean{}, err
	}
	return doc.Bean, nil
}

// Reindex rebuilds the SQLite bean index from the journal markdown.
func (s *BeanService) Reindex(ctx context.Context) error {
	docs, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.projector.UpsertBean(ctx, doc.Bean); err != nil {
			return err
		}
	}
	return nil
}

func makeSlug(name, roaster string) string {
	if strings.TrimSpace(roaster) == "" {
		return slug.Make(name)
	}
	return slug.Make(roaster + " " + name)
}
