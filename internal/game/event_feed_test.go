package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

func TestEventFeed_RingKeepsNewest(t *testing.T) {
	f := NewEventFeed()
	for i := 0; i < feedMaxEntries+5; i++ {
		f.Add(TourLogEntry{POI: fmt.Sprintf("p%d", i)})
	}
	recent := f.Recent()
	testutil.AssertEqual(t, "count", len(recent), feedMaxEntries)
	testutil.AssertEqual(t, "oldest", recent[0].POI, "p5")
	testutil.AssertEqual(t, "newest", recent[len(recent)-1].POI, fmt.Sprintf("p%d", feedMaxEntries+4))
}

func TestEventFeed_SyncConsumesOnce(t *testing.T) {
	tl := NewTourLog()
	f := NewEventFeed()
	tl.Add(0, "a", "card", "open", "A", 0)
	tl.Add(time.Millisecond, "--", "camera", "resize", "800x600", 0)
	f.Sync(tl)
	f.Sync(tl)
	testutil.AssertEqual(t, "after first sync", len(f.Recent()), 1)

	tl.Add(2*time.Millisecond, "a", "poi", "complete", "A", 0)
	f.Sync(tl)
	testutil.AssertEqual(t, "after second sync", len(f.Recent()), 2)
	testutil.AssertEqual(t, "latest", f.Recent()[1].Key, "complete")
}

func TestFeedWindow_ShortScreens(t *testing.T) {
	f := NewEventFeed()
	for i := 0; i < 5; i++ {
		f.Add(TourLogEntry{POI: fmt.Sprintf("p%d", i)})
	}
	cases := []struct {
		screenH int
		want    int
	}{
		{1, 0},
		{7, 0},
		{24, 0},
		{40, 1},
		{56, 2},
		{720, 5},
	}
	for _, c := range cases {
		got := feedWindow(f.Recent(), c.screenH)
		if len(got) != c.want {
			t.Fatalf("screenH=%d: got %d rows, want %d", c.screenH, len(got), c.want)
		}
		if len(got) > 0 && got[len(got)-1].POI != "p4" {
			t.Fatalf("screenH=%d: newest row is %s, want p4", c.screenH, got[len(got)-1].POI)
		}
	}
}
