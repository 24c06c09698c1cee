package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"

	"github.com/Garsondee/city-explorer/internal/assets"
)

func registryOf(points ...[2]int) *Registry {
	records := make([]assets.Record, len(points))
	for i, p := range points {
		records[i] = assets.Record{ID: string(rune('a' + i)), Name: string(rune('A' + i)), Pos: p}
	}
	return NewRegistry(records, 15)
}

func TestRegistry_OnlyFirstStartsVisible(t *testing.T) {
	r := registryOf([2]int{0, 0}, [2]int{10, 10}, [2]int{20, 20})
	testutil.AssertEqual(t, "visible", r.VisibleCount(), 1)
	if !r.At(0).Visible() || r.At(1).Visible() {
		t.Fatal("expected only index 0 visible")
	}
	testutil.AssertEqual(t, "by id", r.ByID("b").Index, 1)
	if r.At(3) != nil || r.At(-1) != nil {
		t.Fatal("At out of range should return nil")
	}
}

func TestRegistry_NextToRevealWrapsAndSkipsCompleted(t *testing.T) {
	r := registryOf([2]int{0, 0}, [2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3})
	r.markCompleted(r.At(3))
	r.markCompleted(r.At(0))
	if p := r.NextToReveal(2); p != r.At(1) {
		t.Fatalf("after 2 expected index 1 (wrapping past completed 3 and 0), got %v", p)
	}
	if p := r.NextToReveal(0); p != r.At(1) {
		t.Fatalf("after 0 expected index 1, got %v", p)
	}
	r.markCompleted(r.At(1))
	r.markCompleted(r.At(2))
	if p := r.NextToReveal(1); p != nil {
		t.Fatalf("expected nil when everything is completed, got %v", p.ID)
	}
}

func TestRegistry_RevealAreaUsesBoundingBox(t *testing.T) {
	r := registryOf([2]int{1000, 1000}, [2]int{1090, 1090}, [2]int{1100, 1000}, [2]int{1000, 900}, [2]int{1101, 1000})
	got := r.RevealArea(Pt(1000, 1000), 100)
	ids := make([]string, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	// (1090,1090) is outside the circle but inside the box; (1100,1000) sits
	// on the exclusive right edge; (1000,900) on the inclusive top edge.
	if len(ids) != 2 || ids[0] != "b" || ids[1] != "d" {
		t.Fatalf("expected [b d], got %v", ids)
	}
	if again := r.RevealArea(Pt(1000, 1000), 100); len(again) != 0 {
		t.Fatalf("already visible POIs must not be reported again, got %d", len(again))
	}
}

func TestRegistry_RevealRadius(t *testing.T) {
	r := registryOf([2]int{0, 0}, [2]int{300, 400})
	r.markCompleted(r.At(0))
	radius, next := r.RevealRadius(r.At(0), 150, 800)
	if next != r.At(1) || radius != 650 {
		t.Fatalf("expected 650 towards b, got %.1f towards %v", radius, next)
	}
	r.markCompleted(r.At(1))
	radius, next = r.RevealRadius(r.At(1), 150, 800)
	if next != nil || radius != 800 {
		t.Fatalf("expected fallback 800, got %.1f", radius)
	}
}

func TestRegistry_MarkCompletedOnce(t *testing.T) {
	r := registryOf([2]int{0, 0})
	if !r.markCompleted(r.At(0)) || r.markCompleted(r.At(0)) {
		t.Fatal("expected completion to flip exactly once")
	}
	testutil.AssertEqual(t, "completed", r.CompletedCount(), 1)
}

func TestPOI_ShakeRampsAndEnds(t *testing.T) {
	p := &POI{ID: "x"}
	start := time.Unix(0, 0)
	rng := rand.New(rand.NewSource(3))
	if !p.StartShake(start) || p.StartShake(start) {
		t.Fatal("expected the shake to start once")
	}
	for ms := 0; ms < 700; ms += 10 {
		now := start.Add(time.Duration(ms) * time.Millisecond)
		if p.UpdateShake(now, 700*time.Millisecond, 10, rng) {
			t.Fatalf("shake ended early at %dms", ms)
		}
		limit := float64(ms)/700*10 + 1e-9
		if off := p.ShakeOffset(); off > limit || off < -limit {
			t.Fatalf("offset %.3f exceeds ramp %.3f at %dms", off, limit, ms)
		}
	}
	if !p.UpdateShake(start.Add(700*time.Millisecond), 700*time.Millisecond, 10, rng) {
		t.Fatal("expected the shake to end at 700ms")
	}
	if p.Shaking() || p.ShakeOffset() != 0 {
		t.Fatal("marker should be back at rest")
	}
}

func TestPOI_CompletedDoesNotShake(t *testing.T) {
	p := &POI{completed: true}
	if p.StartShake(time.Unix(0, 0)) {
		t.Fatal("completed POI should not shake")
	}
}
