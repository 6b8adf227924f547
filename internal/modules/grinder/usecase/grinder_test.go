package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	grinderout "brewlog/internal/modules/grinder/adapter/out"
	"brewlog/internal/modules/grinder/dto"
	grinderin "brewlog/internal/modules/grinder/port/in"
	"brewlog/internal/modules/grinder/service"
	"brewlog/internal/modules/grinder/usecase"
	"brewlog/internal/platform/clock"
	apperrors "brewlog/internal/platform/errors"
)

func newGrinder(t *testing.T) grinderin.Usecase {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".brewlog", "grinder.json")
	return usecase.NewInteractor(service.NewGrinderService(clock.SystemClock{}, grinderout.NewFileScaleStore(path)))
}

func TestSetAndGetScale(t *testing.T) {
	t.Parallel()
	uc := newGrinder(t)
	ctx := context.Background()

	if _, err := uc.Get(ctx); !errors.Is(err, apperrors.ErrNoGrinder) {
		t.Fatalf("unconfigured grinder should report ErrNoGrinder, got %v", err)
	}

	out, err := uc.Set(ctx, dto.SetInput{ScaleMin: 0, ScaleMax: 40, StepSize: 0.5})
	if err != nil {
		t.Fatalf("set scale: %v", err)
	}
	if out.Points != 81 {
		t.Fatalf("points = %d, want 81", out.Points)
	}

	loaded, err := uc.Get(ctx)
	if err != nil {
		t.Fatalf("get scale: %v", err)
	}
	if loaded.ScaleMin != 0 || loaded.ScaleMax != 40 || loaded.StepSize != 0.5 {
		t.Fatalf("scale did not round trip: %+v", loaded)
	}

	// Reconfiguring replaces the stored scale.
	if _, err := uc.Set(ctx, dto.SetInput{ScaleMin: 1, ScaleMax: 10, StepSize: 1}); err != nil {
		t.Fatalf("reconfigure: %v", err)
	}
	loaded, err = uc.Get(ctx)
	if err != nil {
		t.Fatalf("get after reconfigure: %v", err)
	}
	if loaded.ScaleMax != 10 || loaded.Points != 10 {
		t.Fatalf("reconfigure did not stick: %+v", loaded)
	}
}

func TestSetRejectsInvalidScale(t *testing.T) {
	t.Parallel()
	uc := newGrinder(t)

	if _, err := uc.Set(context.Background(), dto.SetInput{ScaleMin: 5, ScaleMax: 5, StepSize: 0.5}); err == nil {
		t.Fatalf("degenerate scale should fail")
	}
}
