package out

import (
	"context"

	"brewlog/internal/modules/shot/domain"
)

type ShotStore interface {
	Save(ctx context.Context, shot domain.Shot) error
	FindByID(ctx context.Context, id string) (domain.Shot, error)
	// ListByBean returns shots newest first, capped at limit when positive.
	ListByBean(ctx context.Context, beanID string, limit int) ([]domain.Shot, error)
	// History returns shots oldest first; empty bean id means all beans.
	History(ctx context.Context, beanID string) ([]domain.Shot, error)
	UpdateTasting(ctx context.Context, id string, taste domain.Taste, strength domain.Strength) error
	Delete(ctx context.Context, id string) error
}
