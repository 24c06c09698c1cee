package game

import (
	"math"
	"testing"

	"github.com/pixil98/go-testutil"
)

const eps = 1e-6

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func nearPt(a, b Point) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func TestCamera_InitialCuritibaView(t *testing.T) {
	c := NewCamera(16761, 16910, 900, 720)
	v := c.View()
	if !near(v.W, 21137.5) || !near(v.H, 16910) {
		t.Fatalf("expected 21137.5x16910 view, got %.2fx%.2f", v.W, v.H)
	}
	if !near(v.X, -2188.25) || !near(v.Y, 0) {
		t.Fatalf("expected view at (-2188.25, 0), got (%.2f, %.2f)", v.X, v.Y)
	}
	testutil.AssertEqual(t, "max width", c.MaxWidth(), 21137.5)
	testutil.AssertEqual(t, "min width", c.MinWidth(), 16761.0/15)
}

func TestCamera_MaxWidthTallScreen(t *testing.T) {
	// Screen narrower than the map's aspect: the width covers the map.
	c := NewCamera(2000, 1000, 400, 400)
	testutil.AssertEqual(t, "max width", c.MaxWidth(), 2000.0)
	v := c.View()
	if !near(v.X, 0) || !near(v.Y, -500) {
		t.Fatalf("expected (0,-500), got (%.2f,%.2f)", v.X, v.Y)
	}
}

func TestCamera_ScreenMapRoundTrip(t *testing.T) {
	c := NewCamera(10000, 8000, 1000, 800)
	c.Focus(Pt(3000, 2500), 2500)
	for _, p := range []Point{{0, 0}, {1000, 800}, {123.5, 456.25}, {-50, 900}} {
		got := c.MapToScreen(c.ScreenToMap(p))
		if !nearPt(got, p) {
			t.Fatalf("round trip of %v gave %v", p, got)
		}
	}
}

func TestCamera_ZoomKeepsPivotAnchored(t *testing.T) {
	c := NewCamera(10000, 10000, 1000, 800)
	c.Focus(Pt(5000, 5000), 2000)
	pivot := Pt(300, 200)
	before := c.ScreenToMap(pivot)

	c.Zoom(-1, pivot)
	if !near(c.View().W, 1600) {
		t.Fatalf("zoom in should scale width by 0.8, got %.2f", c.View().W)
	}
	if after := c.ScreenToMap(pivot); !nearPt(before, after) {
		t.Fatalf("pivot moved from %v to %v", before, after)
	}

	c.Zoom(1, pivot)
	if !near(c.View().W, 2000) {
		t.Fatalf("zoom out should scale width by 1.25, got %.2f", c.View().W)
	}
	if after := c.ScreenToMap(pivot); !nearPt(before, after) {
		t.Fatalf("pivot moved from %v to %v", before, after)
	}
}

func TestCamera_ZoomZeroDirectionIsNoop(t *testing.T) {
	c := NewCamera(10000, 10000, 1000, 800)
	c.Focus(Pt(5000, 5000), 2000)
	v := c.View()
	c.Zoom(0, Pt(10, 10))
	if c.View() != v {
		t.Fatalf("zoom(0) changed the view: %v -> %v", v, c.View())
	}
}

func TestCamera_ZoomBounds(t *testing.T) {
	c := NewCamera(15000, 15000, 1000, 800)
	for range 60 {
		c.Zoom(-1, Pt(500, 400))
	}
	if !near(c.View().W, 1000) {
		t.Fatalf("expected min width 1000, got %.2f", c.View().W)
	}
	for range 60 {
		c.Zoom(1, Pt(500, 400))
	}
	if !near(c.View().W, c.MaxWidth()) {
		t.Fatalf("expected max width %.2f, got %.2f", c.MaxWidth(), c.View().W)
	}
}

func TestCamera_ClampIdempotent(t *testing.T) {
	c := NewCamera(10000, 10000, 1000, 800)
	c.Focus(Pt(5000, 5000), 2000)
	for _, d := range []Point{{100000, 0}, {-100000, 0}, {0, 50000}, {0, -50000}, {37, -12}} {
		c.Pan(d)
		v := c.View()
		if v.X < 0 || v.Right() > 10000+eps || v.Y < 0 || v.Bottom() > 10000+eps {
			t.Fatalf("view escaped the map after pan %v: %+v", d, v)
		}
		c.Clamp()
		if c.View() != v {
			t.Fatalf("second clamp moved the view: %+v -> %+v", v, c.View())
		}
	}
}

func TestCamera_PanFollowsDrag(t *testing.T) {
	c := NewCamera(10000, 10000, 1000, 800)
	c.Focus(Pt(5000, 5000), 2000)
	before := c.View()
	c.Pan(Pt(100, -50)) // scale 0.5 px per unit
	after := c.View()
	if !near(after.X, before.X-200) || !near(after.Y, before.Y+100) {
		t.Fatalf("expected view shifted by (-200,+100), got %+v -> %+v", before, after)
	}
}

func TestCamera_ResizeKeepsWidthAndCentre(t *testing.T) {
	c := NewCamera(10000, 10000, 1000, 800)
	c.Focus(Pt(5000, 5000), 2000)
	c.Resize(1000, 500)
	v := c.View()
	if !near(v.W, 2000) || !near(v.H, 1000) {
		t.Fatalf("expected 2000x1000, got %.1fx%.1f", v.W, v.H)
	}
	if !nearPt(v.Center(), Pt(5000, 5000)) {
		t.Fatalf("centre moved to %v", v.Center())
	}
}

func TestCamera_DegenerateScreen(t *testing.T) {
	c := NewCamera(10000, 10000, 1000, 800)
	v := c.View()
	c.Resize(0, 0)
	if c.Valid() {
		t.Fatal("zero-size screen should invalidate the camera")
	}
	testutil.AssertEqual(t, "scale", c.Scale(), 0.0)
	c.Zoom(-1, Pt(0, 0))
	c.Pan(Pt(10, 10))
	if c.View() != v {
		t.Fatalf("degenerate camera should not move: %+v -> %+v", v, c.View())
	}
	c.Resize(1000, 800)
	if !c.Valid() || c.View() != v {
		t.Fatalf("restored screen should restore the view, got %+v", c.View())
	}
}
