package game

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func TestTestTour_WideScreenWithCustomPadding(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RevealPadding = 50
	logger, hook := logtest.NewNullLogger()

	tt := newTour(t,
		WithTourConfig(cfg),
		WithScreenSize(1280, 720),
		WithTourLogger(logger),
		WithMapSize(4000, 4000),
		WithPOI("a", 1000, 1000),
		WithPOI("b", 1300, 1400), // 500 away
	)
	x := tt.Explorer

	if w, h := x.Camera().Screen(); w != 1280 || h != 720 {
		t.Fatalf("screen size option applied after the config was lost: %dx%d", w, h)
	}
	if !tt.ClickPOI(x.POIs().At(0)) {
		t.Fatal("card did not open")
	}
	if got := x.Card().Rect(); got.X != 390 || got.Y != 85 {
		t.Fatalf("card should be centred on 1280x720, got %+v", got)
	}

	p := tt.CompleteFront()
	if p == nil {
		t.Fatalf("front POI did not complete\n%s", tt.Log.Format())
	}
	radius, next, ok := tt.Log.RevealFrom("a")
	if !ok || next != "b" || radius != 550 {
		t.Fatalf("expected reveal r=550 towards b, got r=%.1f next=%q ok=%v", radius, next, ok)
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Message != "poi completed" {
		t.Fatalf("completion was not logged through the tour logger: %+v", entry)
	}
	if entry.Level != logrus.InfoLevel || entry.Data["poi"] != "a" {
		t.Fatalf("unexpected completion log entry: level=%v data=%v", entry.Level, entry.Data)
	}
}
