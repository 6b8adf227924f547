package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	advisoroutadapter "brewlog/internal/modules/advisor/adapter/out"
	advisorin "brewlog/internal/modules/advisor/port/in"
	advisorservice "brewlog/internal/modules/advisor/service"
	advisorusecase "brewlog/internal/modules/advisor/usecase"
	beanoutadapter "brewlog/internal/modules/bean/adapter/out"
	beandto "brewlog/internal/modules/bean/dto"
	beanin "brewlog/internal/modules/bean/port/in"
	beanservice "brewlog/internal/modules/bean/service"
	beanusecase "brewlog/internal/modules/bean/usecase"
	grinderoutadapter "brewlog/internal/modules/grinder/adapter/out"
	grinderdto "brewlog/internal/modules/grinder/dto"
	grinderservice "brewlog/internal/modules/grinder/service"
	grinderusecase "brewlog/internal/modules/grinder/usecase"
	shotoutadapter "brewlog/internal/modules/shot/adapter/out"
	"brewlog/internal/modules/shot/dto"
	shotin "brewlog/internal/modules/shot/port/in"
	shotservice "brewlog/internal/modules/shot/service"
	"brewlog/internal/modules/shot/usecase"
	apperrors "brewlog/internal/platform/errors"
	"brewlog/internal/platform/tx"
)

// steppingClock hands out strictly increasing whole-second timestamps so
// persisted orderings are unambiguous.
type steppingClock struct{ now time.Time }

func (c *steppingClock) Now() time.Time {
	c.now = c.now.Add(time.Minute)
	return c.now
}

type seqID struct {
	prefix string
	n      int
}

func (g *seqID) New() string {
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

type harness struct {
	journal string
	beans   beanin.Usecase
	shots   shotin.Usecase
	advisor advisorin.Usecase
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	journal := t.TempDir()
	dbPath := filepath.Join(journal, ".brewlog", "brewlog.db")
	clk := &steppingClock{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}

	grinderUC := grinderusecase.NewInteractor(
		grinderservice.NewGrinderService(clk, grinderoutadapter.NewFileScaleStore(filepath.Join(journal, ".brewlog", "grinder.json"))),
	)
	if _, err := grinderUC.Set(context.Background(), grinderdto.SetInput{ScaleMin: 0, ScaleMax: 40, StepSize: 0.5}); err != nil {
		t.Fatalf("set grinder scale: %v", err)
	}

	beanProjector, err := beanoutadapter.NewSQLiteBeanProjector(dbPath)
	if err != nil {
		t.Fatalf("new bean projector: %v", err)
	}
	beanUC := beanusecase.NewInteractor(beanservice.NewBeanService(
		clk, &seqID{prefix: "bean"}, beanoutadapter.NewJournalBeanStore(journal), beanProjector,
	))

	adviceStore, err := advisoroutadapter.NewSQLiteAdviceStore(dbPath)
	if err != nil {
		t.Fatalf("new advice store: %v", err)
	}
	advisorUC := advisorusecase.NewInteractor(
		advisorservice.NewAdvisorService(clk, &seqID{prefix: "rec"}, adviceStore),
		grinderUC,
		advisoroutadapter.NewJournalGuidanceProjector(journal),
	)

	shotStore, err := shotoutadapter.NewSQLiteShotStore(dbPath)
	if err != nil {
		t.Fatalf("new shot store: %v", err)
	}
	shotUC := usecase.NewInteractor(
		shotservice.NewShotService(clk, &seqID{prefix: "shot"}, shotStore),
		beanUC,
		advisorUC,
		tx.NoopManager{},
	)

	return &harness{journal: journal, beans: beanUC, shots: shotUC, advisor: advisorUC}
}

func TestRecordShotLifecycle(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	bean, err := h.beans.Add(ctx, beandto.AddInput{Name: "Friendly Beast", Roaster: "Roastco", Roast: "medium"})
	if err != nil {
		t.Fatalf("add bean: %v", err)
	}

	slow := 35.0
	first, err := h.shots.Record(ctx, dto.RecordInput{
		Bean:              bean.Slug,
		DoseGrams:         18,
		YieldGrams:        36,
		ExtractionSeconds: &slow,
		GrindSetting:      12,
		Taste:             "bitter",
	})
	if err != nil {
		t.Fatalf("record first shot: %v", err)
	}
	if first.Guidance.Direction != "coarser" || first.Guidance.SuggestedSetting != 13 {
		t.Fatalf("unexpected first guidance: %+v", first.Guidance)
	}
	if first.FollowEvaluated {
		t.Fatalf("first shot has no prior recommendation to evaluate")
	}

	// The bean note's guidance block tracks the latest recommendation.
	notePath := filepath.Join(h.journal, "beans", bean.Slug+".md")
	content, err := os.ReadFile(notePath)
	if err != nil {
		t.Fatalf("read bean note: %v", err)
	}
	if !strings.Contains(string(content), "to **13.00**") {
		t.Fatalf("guidance block missing from bean note: %s", content)
	}

	// Second shot dials in at the suggested setting.
	inBand := 28.0
	second, err := h.shots.Record(ctx, dto.RecordInput{
		Bean:              bean.Slug,
		DoseGrams:         18,
		YieldGrams:        40,
		ExtractionSeconds: &inBand,
		GrindSetting:      13,
		Taste:             "perfect",
	})
	if err != nil {
		t.Fatalf("record second shot: %v", err)
	}
	if !second.FollowEvaluated || !second.FollowedPrior {
		t.Fatalf("second shot followed the prior suggestion: %+v", second)
	}
	if second.PriorSuggested != 13 {
		t.Fatalf("prior suggestion = %.2f, want 13", second.PriorSuggested)
	}
	if second.Guidance.Direction != "no_change" {
		t.Fatalf("perfect shot should hold steady: %+v", second.Guidance)
	}

	guidance, err := h.advisor.Guidance(ctx, first.Shot.BeanID)
	if err != nil {
		t.Fatalf("guidance: %v", err)
	}
	if guidance.ShotID != second.Shot.ID {
		t.Fatalf("guidance should track the newest shot: %+v", guidance)
	}

	shots, err := h.shots.List(ctx, first.Shot.BeanID, 0)
	if err != nil {
		t.Fatalf("list shots: %v", err)
	}
	if len(shots) != 2 || shots[0].ID != second.Shot.ID {
		t.Fatalf("expected newest-first listing, got %+v", shots)
	}
}

func TestTasteEditDoesNotRegenerateAdvice(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	bean, err := h.beans.Add(ctx, beandto.AddInput{Name: "Solo", Roast: "light"})
	if err != nil {
		t.Fatalf("add bean: %v", err)
	}

	out, err := h.shots.Record(ctx, dto.RecordInput{
		Bean: bean.Slug, DoseGrams: 18, YieldGrams: 36, GrindSetting: 12, Taste: "sour",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	updated, err := h.shots.Taste(ctx, dto.TasteInput{ShotID: out.Shot.ID, Taste: "perfect", Strength: "strong"})
	if err != nil {
		t.Fatalf("taste: %v", err)
	}
	if updated.Taste != "perfect" || updated.Strength != "strong" {
		t.Fatalf("tasting not applied: %+v", updated)
	}

	// The stored recommendation still reflects the verdict at record time.
	guidance, err := h.advisor.Guidance(ctx, out.Shot.BeanID)
	if err != nil {
		t.Fatalf("guidance: %v", err)
	}
	if guidance.Reason != "taste_sour" || guidance.SuggestedSetting != 11.5 {
		t.Fatalf("advice should be immutable after taste edits: %+v", guidance)
	}
}

func TestDeleteShotCascadesToRecommendation(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	bean, err := h.beans.Add(ctx, beandto.AddInput{Name: "Short Lived"})
	if err != nil {
		t.Fatalf("add bean: %v", err)
	}

	out, err := h.shots.Record(ctx, dto.RecordInput{
		Bean: bean.Slug, DoseGrams: 18, YieldGrams: 36, GrindSetting: 12, Taste: "bitter",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := h.shots.Delete(ctx, out.Shot.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := h.shots.Get(ctx, out.Shot.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("shot should be gone, got %v", err)
	}
	if _, err := h.advisor.Guidance(ctx, out.Shot.BeanID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("recommendation should be gone, got %v", err)
	}
}

func TestRecordRejectsInvalidShot(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	bean, err := h.beans.Add(ctx, beandto.AddInput{Name: "Strict"})
	if err != nil {
		t.Fatalf("add bean: %v", err)
	}

	if _, err := h.shots.Record(ctx, dto.RecordInput{Bean: bean.Slug, DoseGrams: 0, YieldGrams: 36, GrindSetting: 12}); err == nil {
		t.Fatalf("zero dose should fail")
	}
	if _, err := h.shots.Record(ctx, dto.RecordInput{Bean: bean.Slug, DoseGrams: 18, YieldGrams: 10, GrindSetting: 12}); err == nil {
		t.Fatalf("yield below dose should fail")
	}
	if _, err := h.shots.Record(ctx, dto.RecordInput{Bean: "nope", DoseGrams: 18, YieldGrams: 36, GrindSetting: 12}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown bean should report not found, got %v", err)
	}
}
