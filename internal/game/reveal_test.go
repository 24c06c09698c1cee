package game

import (
	"testing"
	"time"
)

// punchRecorder records every punch radius.
type punchRecorder struct {
	radii []float64
}

func (p *punchRecorder) Punch(_ Point, r float64) { p.radii = append(p.radii, r) }

func TestRevealAnimation_EaseOutCubic(t *testing.T) {
	start := time.Unix(0, 0)
	a := NewRevealAnimation(Pt(0, 0), 400, start, 400*time.Millisecond)
	if r := a.RadiusAt(0); r != 0 {
		t.Fatalf("radius at start = %.2f", r)
	}
	// t=0.5: 1-(0.5)^3 = 0.875
	if r := a.RadiusAt(200 * time.Millisecond); !near(r, 350) {
		t.Fatalf("radius at half time = %.4f, want 350", r)
	}
	if r := a.RadiusAt(time.Second); r != 400 {
		t.Fatalf("radius past the end = %.4f", r)
	}
}

func TestRevealAnimation_FinalRadiusExactForAnyTickSpacing(t *testing.T) {
	for _, step := range []time.Duration{time.Millisecond, 16 * time.Millisecond, 33 * time.Millisecond, 250 * time.Millisecond, time.Second} {
		start := time.Unix(0, 0)
		a := NewRevealAnimation(Pt(10, 10), 574.3, start, 399*time.Millisecond)
		rec := &punchRecorder{}
		now := start
		for !a.Tick(now, rec) {
			now = now.Add(step)
		}
		last := rec.radii[len(rec.radii)-1]
		if last != 574.3 {
			t.Fatalf("step %v: last punched radius %.6f, want 574.3", step, last)
		}
		for i := 1; i < len(rec.radii); i++ {
			if rec.radii[i] < rec.radii[i-1] {
				t.Fatalf("step %v: radius shrank %.3f -> %.3f", step, rec.radii[i-1], rec.radii[i])
			}
		}
	}
}

func TestRevealAnimation_NoTicksAfterDone(t *testing.T) {
	start := time.Unix(0, 0)
	a := NewRevealAnimation(Pt(0, 0), 100, start, 100*time.Millisecond)
	rec := &punchRecorder{}
	if !a.Tick(start.Add(time.Second), rec) {
		t.Fatal("expected a late first tick to finish the animation")
	}
	a.Tick(start.Add(2*time.Second), rec)
	if len(rec.radii) != 1 || !a.Done() || a.LastRadius() != 100 {
		t.Fatalf("expected exactly one final punch, got %v", rec.radii)
	}
}
