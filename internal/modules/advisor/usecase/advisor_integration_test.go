package usecase_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	advisorout "brewlog/internal/modules/advisor/adapter/out"
	"brewlog/internal/modules/advisor/dto"
	advisorin "brewlog/internal/modules/advisor/port/in"
	"brewlog/internal/modules/advisor/service"
	"brewlog/internal/modules/advisor/usecase"
	grinderdto "brewlog/internal/modules/grinder/dto"
	"brewlog/internal/platform/clock"
)

type fakeGrinder struct {
	scale grinderdto.ScaleOutput
}

func (f fakeGrinder) Set(_ context.Context, _ grinderdto.SetInput) (grinderdto.ScaleOutput, error) {
	return f.scale, nil
}

func (f fakeGrinder) Get(_ context.Context) (grinderdto.ScaleOutput, error) {
	return f.scale, nil
}

type seqID struct{ n int }

func (g *seqID) New() string {
	g.n++
	return fmt.Sprintf("rec-%d", g.n)
}

func writeBeanNote(t *testing.T, journal, slug string) string {
	t.Helper()
	dir := filepath.Join(journal, "beans")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir beans: %v", err)
	}
	path := filepath.Join(dir, slug+".md")
	content := "---\nid: bean-1\nname: Test Bean\n---\n\n# Test Bean\n\n<!-- brewlog:guidance:start -->\nno shots yet\n<!-- brewlog:guidance:end -->\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write bean note: %v", err)
	}
	return path
}

func newAdvisor(t *testing.T, journal string) advisorin.Usecase {
	t.Helper()
	store, err := advisorout.NewSQLiteAdviceStore(filepath.Join(journal, ".brewlog", "brewlog.db"))
	if err != nil {
		t.Fatalf("new advice store: %v", err)
	}
	grinder := fakeGrinder{scale: grinderdto.ScaleOutput{ScaleMin: 0, ScaleMax: 40, StepSize: 0.5, Points: 81, UpdatedAt: time.Now()}}
	return usecase.NewInteractor(
		service.NewAdvisorService(clock.SystemClock{}, &seqID{}, store),
		grinder,
		advisorout.NewJournalGuidanceProjector(journal),
	)
}

func TestCreateForShotPersistsAndProjectsGuidance(t *testing.T) {
	t.Parallel()
	journal := t.TempDir()
	notePath := writeBeanNote(t, journal, "test-bean")
	uc := newAdvisor(t, journal)
	ctx := context.Background()

	out, err := uc.CreateForShot(ctx, dto.CreateInput{
		ShotID:   "shot-1",
		BeanID:   "bean-1",
		BeanSlug: "test-bean",
		Sample:   dto.SampleInput{GrindSetting: 12, Taste: "bitter"},
	})
	if err != nil {
		t.Fatalf("create for shot: %v", err)
	}
	if out.Direction != "coarser" || out.SuggestedSetting != 12.5 {
		t.Fatalf("unexpected advice: %+v", out)
	}

	content, err := os.ReadFile(notePath)
	if err != nil {
		t.Fatalf("read bean note: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "grind coarser by 1 step(s) to **12.50**") {
		t.Fatalf("guidance block was not rewritten: %s", text)
	}
	if strings.Contains(text, "no shots yet") {
		t.Fatalf("stale guidance block survived: %s", text)
	}

	guidance, err := uc.Guidance(ctx, "bean-1")
	if err != nil {
		t.Fatalf("guidance: %v", err)
	}
	if guidance.ShotID != "shot-1" || guidance.Confidence != "high" {
		t.Fatalf("unexpected guidance: %+v", guidance)
	}
}

func TestPreviewDoesNotPersist(t *testing.T) {
	t.Parallel()
	journal := t.TempDir()
	uc := newAdvisor(t, journal)
	ctx := context.Background()

	advice, err := uc.Preview(ctx, dto.SampleInput{GrindSetting: 12, Taste: "sour"})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if advice.Direction != "finer" || advice.SuggestedSetting != 11.5 {
		t.Fatalf("unexpected advice: %+v", advice)
	}
	if _, err := uc.Guidance(ctx, "bean-1"); err == nil {
		t.Fatalf("preview must not create a recommendation")
	}
}

func TestPreviewRejectsUnknownTaste(t *testing.T) {
	t.Parallel()
	journal := t.TempDir()
	uc := newAdvisor(t, journal)

	if _, err := uc.Preview(context.Background(), dto.SampleInput{GrindSetting: 12, Taste: "salty"}); err == nil {
		t.Fatalf("unknown taste should fail")
	}
}

func TestAdherenceBuckets(t *testing.T) {
	t.Parallel()
	journal := t.TempDir()
	uc := newAdvisor(t, journal)
	ctx := context.Background()

	// shot-1: high confidence (taste). shot-2 follows it at 11.5 exactly,
	// and itself gets a medium-confidence timing recommendation that goes
	// unfollowed.
	if _, err := uc.CreateForShot(ctx, dto.CreateInput{
		ShotID: "shot-1", BeanID: "bean-1",
		Sample: dto.SampleInput{GrindSetting: 12, Taste: "sour"},
	}); err != nil {
		t.Fatalf("create shot-1 advice: %v", err)
	}
	slow := 37.0
	if _, err := uc.CreateForShot(ctx, dto.CreateInput{
		ShotID: "shot-2", BeanID: "bean-1",
		Sample: dto.SampleInput{GrindSetting: 11.5, ExtractionSeconds: &slow},
	}); err != nil {
		t.Fatalf("create shot-2 advice: %v", err)
	}
	followed, err := uc.EvaluateFollowThrough(ctx, dto.EvaluateInput{BeanID: "bean-1", NewShotID: "shot-2", NewGrindSetting: 11.5})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !followed.Evaluated || !followed.Followed {
		t.Fatalf("shot-2 followed the prior suggestion: %+v", followed)
	}

	out, err := uc.Adherence(ctx, "bean-1")
	if err != nil {
		t.Fatalf("adherence: %v", err)
	}
	if out.Total != 2 || out.Followed != 1 {
		t.Fatalf("unexpected totals: %+v", out)
	}
	if out.Rate != 0.5 {
		t.Fatalf("expected 50%% adherence, got %.2f", out.Rate)
	}
	if len(out.ByConfidence) != 2 {
		t.Fatalf("expected high and medium buckets, got %+v", out.ByConfidence)
	}
	if out.ByConfidence[0].Confidence != "high" || out.ByConfidence[0].Followed != 1 {
		t.Fatalf("unexpected high bucket: %+v", out.ByConfidence[0])
	}
	if out.ByConfidence[1].Confidence != "medium" || out.ByConfidence[1].Followed != 0 {
		t.Fatalf("unexpected medium bucket: %+v", out.ByConfidence[1])
	}
}

func TestDropForShotRemovesGuidance(t *testing.T) {
	t.Parallel()
	journal := t.TempDir()
	uc := newAdvisor(t, journal)
	ctx := context.Background()

	if _, err := uc.CreateForShot(ctx, dto.CreateInput{
		ShotID: "shot-1", BeanID: "bean-1",
		Sample: dto.SampleInput{GrindSetting: 12, Taste: "sour"},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := uc.DropForShot(ctx, "shot-1"); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, err := uc.Guidance(ctx, "bean-1"); err == nil {
		t.Fatalf("guidance should be gone after shot deletion")
	}
}
