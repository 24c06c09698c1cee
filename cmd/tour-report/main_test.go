package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/city-explorer/internal/game"
)

func TestBuildSteps_ChainFromLog(t *testing.T) {
	tt, err := game.NewTestTour(
		game.WithMapSize(2000, 2000),
		game.WithPOI("a", 100, 100),
		game.WithPOI("b", 400, 500),
		game.WithPOI("c", 1800, 1800),
	)
	if err != nil {
		t.Fatalf("NewTestTour: %v", err)
	}
	order := tt.Run()
	if len(order) != 3 {
		t.Fatalf("expected 3 completions, got %d\n%s", len(order), tt.Log.Format())
	}

	steps := buildSteps(tt.Log, order)
	if steps[0].next != "b" {
		t.Fatalf("expected a -> b, got next=%s", steps[0].next)
	}
	if steps[0].radius < 650 || steps[0].radius > 651 {
		t.Fatalf("expected radius 500+150, got %.2f", steps[0].radius)
	}
	if len(steps[0].revealed) != 1 || steps[0].revealed[0] != "b" {
		t.Fatalf("expected a to unlock b, got %v", steps[0].revealed)
	}
	if steps[2].next != "--" || steps[2].radius != 800 {
		t.Fatalf("expected last step to use the fallback radius, got r=%.1f next=%s", steps[2].radius, steps[2].next)
	}
}

func TestFormatStep_WrapsDescription(t *testing.T) {
	p := &game.POI{
		ID:          "x",
		Name:        "Somewhere",
		Description: strings.Repeat("word ", 40),
		Pos:         game.Pt(10, 20),
	}
	out := formatStep(step{index: 1, poi: p, radius: 800, next: "--"}, 40)
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n")[1:] {
		if len(line) > 40 {
			t.Fatalf("line longer than wrap width: %q", line)
		}
	}
	if !strings.Contains(out, "r=  800.0") {
		t.Fatalf("expected radius in header, got:\n%s", out)
	}
}

func TestFormatStep_NoWrapHidesDescription(t *testing.T) {
	p := &game.POI{ID: "x", Name: "Somewhere", Description: "hidden text"}
	out := formatStep(step{index: 1, poi: p}, 0)
	if strings.Contains(out, "hidden text") {
		t.Fatalf("description should be omitted with wrap=0:\n%s", out)
	}
}
