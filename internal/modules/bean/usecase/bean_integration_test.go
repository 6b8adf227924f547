package usecase_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	beanout "brewlog/internal/modules/bean/adapter/out"
	"brewlog/internal/modules/bean/dto"
	beanin "brewlog/internal/modules/bean/port/in"
	"brewlog/internal/modules/bean/service"
	"brewlog/internal/modules/bean/usecase"
	"brewlog/internal/platform/clock"
	"brewlog/internal/platform/id"

	_ "modernc.org/sqlite"
)

func newBeanUsecase(t *testing.T, journal string) beanin.Usecase {
	t.Helper()
	projector, err := beanout.NewSQLiteBeanProjector(filepath.Join(journal, ".brewlog", "brewlog.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	return usecase.NewInteractor(service.NewBeanService(
		clock.SystemClock{}, id.UUID{}, beanout.NewJournalBeanStore(journal), projector,
	))
}

func TestAddListGetAndReindex(t *testing.T) {
	t.Parallel()
	journal := t.TempDir()
	uc := newBeanUsecase(t, journal)
	ctx := context.Background()

	out, err := uc.Add(ctx, dto.AddInput{
		Name:    "Friendly Beast",
		Roaster: "Roastco",
		Roast:   "medium",
		Origin:  "Colombia",
		Tags:    []string{"washed", "caturra"},
	})
	if err != nil {
		t.Fatalf("add bean: %v", err)
	}
	if out.Slug != "roastco-friendly-beast" {
		t.Fatalf("slug = %q, want roastco-friendly-beast", out.Slug)
	}

	content, err := os.ReadFile(out.NotePath)
	if err != nil {
		t.Fatalf("read bean note: %v", err)
	}
	text := string(content)
	if !strings.HasPrefix(text, "---\n") || !strings.Contains(text, "name: Friendly Beast") {
		t.Fatalf("frontmatter missing: %s", text)
	}
	if !strings.Contains(text, "<!-- brewlog:guidance:start -->") {
		t.Fatalf("new note should carry a guidance block: %s", text)
	}

	list, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list beans: %v", err)
	}
	if len(list) != 1 || list[0].ID != out.ID {
		t.Fatalf("unexpected list result: %+v", list)
	}

	byID, err := uc.Get(ctx, out.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	bySlug, err := uc.Get(ctx, out.Slug)
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if byID.ID != bySlug.ID || byID.Origin != "Colombia" {
		t.Fatalf("id and slug lookups disagree: %+v vs %+v", byID, bySlug)
	}
	if len(byID.Tags) != 2 || byID.Tags[0] != "washed" {
		t.Fatalf("tags did not survive the note round trip: %+v", byID.Tags)
	}

	if err := uc.Reindex(ctx, dto.ReindexInput{}); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(journal, ".brewlog", "brewlog.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM beans WHERE slug = ?`, out.Slug).Scan(&count); err != nil {
		t.Fatalf("query beans: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one projected bean, got %d", count)
	}
}

func TestAddRejectsDuplicateSlug(t *testing.T) {
	t.Parallel()
	uc := newBeanUsecase(t, t.TempDir())
	ctx := context.Background()

	if _, err := uc.Add(ctx, dto.AddInput{Name: "Same Bean", Roaster: "Roastco"}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := uc.Add(ctx, dto.AddInput{Name: "Same Bean", Roaster: "Roastco"}); err == nil {
		t.Fatalf("duplicate slug should fail")
	}
}

func TestAddRejectsUnknownRoast(t *testing.T) {
	t.Parallel()
	uc := newBeanUsecase(t, t.TempDir())

	if _, err := uc.Add(context.Background(), dto.AddInput{Name: "Odd", Roast: "charcoal"}); err == nil {
		t.Fatalf("unknown roast should fail")
	}
}

func TestAddDefaultsToMediumRoast(t *testing.T) {
	t.Parallel()
	uc := newBeanUsecase(t, t.TempDir())

	out, err := uc.Add(context.Background(), dto.AddInput{Name: "Plain"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if out.Roast != "medium" {
		t.Fatalf("roast = %q, want medium", out.Roast)
	}
}
