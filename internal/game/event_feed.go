package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedPanelWidth = 320
	feedMaxEntries = 40
	feedLineHeight = 16
	feedRecent     = 3 // newest rows that get a highlight
)

var feedCategoryColors = map[string]color.RGBA{
	"poi":    {R: 255, G: 215, B: 0, A: 255},
	"reveal": {R: 120, G: 200, B: 255, A: 255},
	"card":   {R: 200, G: 200, B: 200, A: 255},
	"camera": {R: 120, G: 120, B: 120, A: 255},
}

// EventFeed is a ring buffer of the latest tour events, drawn as a side panel.
type EventFeed struct {
	entries []TourLogEntry
	head    int
	count   int
	seen    int // tour log entries already consumed
}

// NewEventFeed creates an empty feed.
func NewEventFeed() *EventFeed {
	return &EventFeed{entries: make([]TourLogEntry, feedMaxEntries)}
}

// Add appends one entry, dropping the oldest when full.
func (f *EventFeed) Add(e TourLogEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Sync pulls entries added to the tour log since the last call.
// Camera entries are skipped.
func (f *EventFeed) Sync(tl *TourLog) {
	all := tl.Entries()
	for _, e := range all[f.seen:] {
		if e.Category != "camera" {
			f.Add(e)
		}
	}
	f.seen = len(all)
}

// Recent returns entries oldest first.
func (f *EventFeed) Recent() []TourLogEntry {
	out := make([]TourLogEntry, f.count)
	for i := 0; i < f.count; i++ {
		out[i] = f.entries[(f.head-f.count+i+feedMaxEntries)%feedMaxEntries]
	}
	return out
}

// feedWindow returns the newest entries that fit under the panel title on a
// screen screenH pixels tall. Short screens get none.
func feedWindow(entries []TourLogEntry, screenH int) []TourLogEntry {
	rows := max(0, (screenH-24)/feedLineHeight)
	if len(entries) > rows {
		entries = entries[len(entries)-rows:]
	}
	return entries
}

// Draw renders the panel against the right edge of the screen.
func (f *EventFeed) Draw(screen *ebiten.Image, screenW, screenH int) {
	x := float32(screenW - feedPanelWidth)
	vector.FillRect(screen, x, 0, feedPanelWidth, float32(screenH), color.RGBA{R: 7, G: 7, B: 9, A: 220}, false)
	vector.StrokeLine(screen, x, 0, x, float32(screenH), 1, color.RGBA{R: 80, G: 80, B: 80, A: 255}, false)
	vector.FillRect(screen, x, 0, feedPanelWidth, 18, color.RGBA{R: 30, G: 30, B: 34, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "TOUR LOG", int(x)+8, 1)

	entries := feedWindow(f.Recent(), screenH)
	y := 22
	for i, e := range entries {
		if i >= len(entries)-feedRecent {
			vector.FillRect(screen, x+2, float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 40, G: 40, B: 46, A: 160}, false)
		}
		dot, ok := feedCategoryColors[e.Category]
		if !ok {
			dot = color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		vector.FillRect(screen, x+5, float32(y+5), 3, 6, dot, false)
		line := fmt.Sprintf("%6.1fs %s %s", e.At.Seconds(), e.POI, e.Key)
		ebitenutil.DebugPrintAt(screen, line, int(x)+12, y)
		y += feedLineHeight
	}
}
