package domain_test

import (
	"testing"

	"brewlog/internal/modules/grinder/domain"
)

func TestScaleValidate(t *testing.T) {
	t.Parallel()
	valid := domain.Scale{ScaleMin: 0, ScaleMax: 40, StepSize: 0.5}
	if err := valid.Validate(); err != nil {
		t.Fatalf("scale should be valid: %v", err)
	}

	inverted := domain.Scale{ScaleMin: 40, ScaleMax: 0, StepSize: 0.5}
	if err := inverted.Validate(); err == nil {
		t.Fatalf("inverted range should fail")
	}
	zeroStep := domain.Scale{ScaleMin: 0, ScaleMax: 40, StepSize: 0}
	if err := zeroStep.Validate(); err == nil {
		t.Fatalf("zero step should fail")
	}
	hugeStep := domain.Scale{ScaleMin: 0, ScaleMax: 1, StepSize: 2}
	if err := hugeStep.Validate(); err == nil {
		t.Fatalf("step beyond range should fail")
	}
	uneven := domain.Scale{ScaleMin: 0, ScaleMax: 10, StepSize: 0.3}
	if err := uneven.Validate(); err == nil {
		t.Fatalf("step that does not divide the range should fail")
	}
}

func TestScaleSnap(t *testing.T) {
	t.Parallel()
	scale := domain.Scale{ScaleMin: 1, ScaleMax: 10, StepSize: 0.5}
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 1},
		{1, 1},
		{3.2, 3},
		{3.3, 3.5},
		{10, 10},
		{12.7, 10},
	}
	for _, c := range cases {
		if got := scale.Snap(c.in); got != c.want {
			t.Fatalf("Snap(%.2f) = %.2f, want %.2f", c.in, got, c.want)
		}
	}
}

func TestScalePoints(t *testing.T) {
	t.Parallel()
	scale := domain.Scale{ScaleMin: 0, ScaleMax: 40, StepSize: 0.5}
	if got := scale.Points(); got != 81 {
		t.Fatalf("Points() = %d, want 81", got)
	}
}
