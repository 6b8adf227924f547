package out

import (
	"context"

	"brewlog/internal/modules/grinder/domain"
)

type ScaleStore interface {
	Save(ctx context.Context, scale domain.Scale) error
	Load(ctx context.Context) (domain.Scale, error)
}
