package service_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"brewlog/internal/modules/advisor/domain"
	"brewlog/internal/modules/advisor/service"
	apperrors "brewlog/internal/platform/errors"
)

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

type seqID struct{ n int }

func (g *seqID) New() string {
	g.n++
	return fmt.Sprintf("rec-%d", g.n)
}

type memAdviceStore struct {
	records []domain.Record
}

func (s *memAdviceStore) Save(_ context.Context, record domain.Record) error {
	for _, r := range s.records {
		if r.ShotID == record.ShotID {
			return apperrors.ErrDuplicateAdvice
		}
	}
	s.records = append(s.records, record)
	return nil
}

func (s *memAdviceStore) FindByShot(_ context.Context, shotID string) (domain.Record, error) {
	for _, r := range s.records {
		if r.ShotID == shotID {
			return r, nil
		}
	}
	return domain.Record{}, apperrors.ErrNotFound
}

func (s *memAdviceStore) LatestForBean(_ context.Context, beanID string) (domain.Record, error) {
	history, _ := s.HistoryForBean(context.Background(), beanID)
	if len(history) == 0 {
		return domain.Record{}, apperrors.ErrNotFound
	}
	return history[0], nil
}

func (s *memAdviceStore) MarkFollowed(_ context.Context, recordID string) (bool, error) {
	for idx := range s.records {
		if s.records[idx].ID == recordID {
			if s.records[idx].WasFollowed {
				return false, nil
			}
			s.records[idx].WasFollowed = true
			return true, nil
		}
	}
	return false, apperrors.ErrNotFound
}

func (s *memAdviceStore) HistoryForBean(_ context.Context, beanID string) ([]domain.Record, error) {
	var out []domain.Record
	for _, r := range s.records {
		if r.BeanID == beanID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memAdviceStore) DeleteByShot(_ context.Context, shotID string) error {
	for idx, r := range s.records {
		if r.ShotID == shotID {
			s.records = append(s.records[:idx], s.records[idx+1:]...)
			return nil
		}
	}
	return nil
}

func newService(store *memAdviceStore) *service.AdvisorService {
	return service.NewAdvisorService(fakeClock{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}, &seqID{}, store)
}

func sampleAdvice() domain.Advice {
	return domain.Advice{
		SuggestedSetting: 11.5,
		Direction:        domain.DirectionFiner,
		Steps:            1,
		Confidence:       domain.ConfidenceHigh,
		Reason:           domain.ReasonTasteSour,
	}
}

func TestCreateForShotRejectsSecondRecommendation(t *testing.T) {
	t.Parallel()
	store := &memAdviceStore{}
	svc := newService(store)
	ctx := context.Background()

	if _, err := svc.CreateForShot(ctx, "shot-1", "bean-1", sampleAdvice()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.CreateForShot(ctx, "shot-1", "bean-1", sampleAdvice())
	if !errors.Is(err, apperrors.ErrDuplicateAdvice) {
		t.Fatalf("expected duplicate advice error, got %v", err)
	}
}

func TestEvaluateFollowThrough(t *testing.T) {
	t.Parallel()
	store := &memAdviceStore{}
	svc := newService(store)
	ctx := context.Background()

	prior, err := svc.CreateForShot(ctx, "shot-1", "bean-1", sampleAdvice())
	if err != nil {
		t.Fatalf("create prior: %v", err)
	}

	// Within tolerance of 11.5: counts as followed.
	record, evaluated, err := svc.EvaluateFollowThrough(ctx, "bean-1", "shot-2", 11.55)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !evaluated {
		t.Fatalf("prior recommendation should be evaluated")
	}
	if record.ID != prior.ID || !record.WasFollowed {
		t.Fatalf("prior should be marked followed: %+v", record)
	}

	stored, err := store.FindByShot(ctx, "shot-1")
	if err != nil {
		t.Fatalf("find prior: %v", err)
	}
	if !stored.WasFollowed {
		t.Fatalf("followed flag should persist")
	}

	// Re-evaluating is a no-op: the flag stays set.
	record, evaluated, err = svc.EvaluateFollowThrough(ctx, "bean-1", "shot-2", 11.55)
	if err != nil || !evaluated || !record.WasFollowed {
		t.Fatalf("re-evaluation should be idempotent: %+v evaluated=%t err=%v", record, evaluated, err)
	}
}

func TestEvaluateFollowThroughOutsideTolerance(t *testing.T) {
	t.Parallel()
	store := &memAdviceStore{}
	svc := newService(store)
	ctx := context.Background()

	if _, err := svc.CreateForShot(ctx, "shot-1", "bean-1", sampleAdvice()); err != nil {
		t.Fatalf("create prior: %v", err)
	}
	record, evaluated, err := svc.EvaluateFollowThrough(ctx, "bean-1", "shot-2", 12.5)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !evaluated || record.WasFollowed {
		t.Fatalf("0.1 tolerance exceeded, should not count as followed: %+v", record)
	}
}

func TestEvaluateFollowThroughSkipsOwnRecommendation(t *testing.T) {
	t.Parallel()
	store := &memAdviceStore{}
	svc := newService(store)
	ctx := context.Background()

	// The bean's only recommendation belongs to the shot being evaluated.
	if _, err := svc.CreateForShot(ctx, "shot-1", "bean-1", sampleAdvice()); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, evaluated, err := svc.EvaluateFollowThrough(ctx, "bean-1", "shot-1", 11.5)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if evaluated {
		t.Fatalf("a shot must not evaluate against its own recommendation")
	}
}

func TestGuidanceIsLatestRecommendation(t *testing.T) {
	t.Parallel()
	store := &memAdviceStore{}
	clk := &steppingClock{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	svc := service.NewAdvisorService(clk, &seqID{}, store)
	ctx := context.Background()

	if _, err := svc.Guidance(ctx, "bean-1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("empty bean should report not found, got %v", err)
	}

	if _, err := svc.CreateForShot(ctx, "shot-1", "bean-1", sampleAdvice()); err != nil {
		t.Fatalf("create first: %v", err)
	}
	second := sampleAdvice()
	second.SuggestedSetting = 11.0
	if _, err := svc.CreateForShot(ctx, "shot-2", "bean-1", second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	guidance, err := svc.Guidance(ctx, "bean-1")
	if err != nil {
		t.Fatalf("guidance: %v", err)
	}
	if guidance.ShotID != "shot-2" || guidance.SuggestedSetting != 11.0 {
		t.Fatalf("guidance should come from the newest shot: %+v", guidance)
	}
}

// steppingClock advances a minute per reading so created records order by
// time.
type steppingClock struct{ now time.Time }

func (c *steppingClock) Now() time.Time {
	c.now = c.now.Add(time.Minute)
	return c.now
}
