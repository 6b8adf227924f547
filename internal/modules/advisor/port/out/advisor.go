package out

import (
	"context"
	"time"

	"brewlog/internal/modules/advisor/domain"
)

type AdviceStore interface {
	// Save rejects a second record for the same shot with
	// apperrors.ErrDuplicateAdvice.
	Save(ctx context.Context, record domain.Record) error
	FindByShot(ctx context.Context, shotID string) (domain.Record, error)
	LatestForBean(ctx context.Context, beanID string) (domain.Record, error)
	// MarkFollowed reports whether the flag changed; marking an already
	// followed record is a no-op.
	MarkFollowed(ctx context.Context, recordID string) (bool, error)
	// HistoryForBean returns records newest first.
	HistoryForBean(ctx context.Context, beanID string) ([]domain.Record, error)
	DeleteByShot(ctx context.Context, shotID string) error
}

// GuidanceProjection is what the journal needs to render a bean's next-shot
// guidance block. Phrasing is the projector's concern.
type GuidanceProjection struct {
	BeanSlug         string
	SuggestedSetting float64
	Direction        domain.Direction
	Steps            int
	Confidence       domain.Confidence
	Reason           domain.ReasonCode
	CreatedAt        time.Time
}

type GuidanceProjector interface {
	Project(ctx context.Context, projection GuidanceProjection) error
}
