package tx

import "context"

// Manager wraps the record-shot sequence (save shot, create advice, evaluate
// follow-through) so the steps commit or fail as one unit.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
