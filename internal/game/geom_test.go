package game

import "testing"

func TestRect_ContainsIsHalfOpen(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}
	cases := []struct {
		p    Point
		want bool
	}{
		{Pt(10, 20), true},
		{Pt(39.999, 59.999), true},
		{Pt(40, 30), false},
		{Pt(20, 60), false},
		{Pt(9.999, 30), false},
	}
	for _, c := range cases {
		if got := r.Contains(c.p); got != c.want {
			t.Fatalf("Contains(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestRectCentered(t *testing.T) {
	r := RectCentered(Pt(100, 50), 30, 10)
	if r.X != 85 || r.Y != 45 || r.Center() != Pt(100, 50) {
		t.Fatalf("got %+v", r)
	}
	if (Rect{W: 0, H: 5}).Empty() != true {
		t.Fatal("zero width rect should be empty")
	}
}
