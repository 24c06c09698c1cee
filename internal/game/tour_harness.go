package game

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Garsondee/city-explorer/internal/assets"
)

// TestTour is a headless exploration harness used by tests and the tour
// report. It drives an Explorer with synthetic input and a synthetic clock,
// so runs are deterministic and need no display.
type TestTour struct {
	Config   Config
	Explorer *Explorer
	Log      *TourLog
	Clip     *RecordingClipboard
	Now      time.Time
	Step     time.Duration // clock advance per tick

	mapW, mapH int
	mapSet     bool
	records    []assets.Record
	seed       int64
	logger     logrus.FieldLogger
}

// RecordingClipboard keeps everything written to it.
type RecordingClipboard struct {
	Writes []string
	Err    error
}

func (c *RecordingClipboard) WriteAll(text string) error {
	if c.Err != nil {
		return c.Err
	}
	c.Writes = append(c.Writes, text)
	return nil
}

// tourOptionKind controls the pass in which an option is applied.
type tourOptionKind int

const (
	tourOptInfra tourOptionKind = iota // map, screen, clock, seed
	tourOptData                        // POI records
)

// TourOption is a builder function applied to a TestTour during construction.
type TourOption struct {
	kind tourOptionKind
	fn   func(*TestTour)
}

// WithMapSize sets the map (and fog) dimensions.
func WithMapSize(w, h int) TourOption {
	return TourOption{tourOptInfra, func(tt *TestTour) {
		tt.mapW, tt.mapH = w, h
		tt.mapSet = true
	}}
}

// WithScreenSize sets the initial window size.
func WithScreenSize(w, h int) TourOption {
	return TourOption{tourOptInfra, func(tt *TestTour) {
		tt.Config.ScreenWidth, tt.Config.ScreenHeight = w, h
	}}
}

// WithSeed sets the jitter RNG seed.
func WithSeed(seed int64) TourOption {
	return TourOption{tourOptInfra, func(tt *TestTour) {
		tt.seed = seed
	}}
}

// WithStep sets the synthetic frame interval.
func WithStep(d time.Duration) TourOption {
	return TourOption{tourOptInfra, func(tt *TestTour) {
		tt.Step = d
	}}
}

// WithTourConfig replaces the whole configuration; screen options given
// after it still apply.
func WithTourConfig(cfg Config) TourOption {
	return TourOption{tourOptInfra, func(tt *TestTour) {
		tt.Config = cfg
	}}
}

// WithTourLogger routes explorer logs somewhere other than io.Discard.
func WithTourLogger(l logrus.FieldLogger) TourOption {
	return TourOption{tourOptInfra, func(tt *TestTour) {
		tt.logger = l
	}}
}

// WithPOI appends a POI at (x,y). Its name is its id.
func WithPOI(id string, x, y int) TourOption {
	return TourOption{tourOptData, func(tt *TestTour) {
		tt.records = append(tt.records, assets.Record{
			ID:          id,
			Name:        id,
			Pos:         [2]int{x, y},
			Description: fmt.Sprintf("About %s.", id),
		})
	}}
}

// WithDataset appends dataset records.
func WithDataset(records []assets.Record) TourOption {
	return TourOption{tourOptData, func(tt *TestTour) {
		tt.records = append(tt.records, records...)
	}}
}

// NewTestTour builds a tour from options in two passes: infrastructure, then
// data. With no POI options the embedded dataset is used, and unless a map
// size was given the map gets the stock raster's size.
func NewTestTour(opts ...TourOption) (*TestTour, error) {
	tt := &TestTour{
		Config: DefaultConfig(),
		Clip:   &RecordingClipboard{},
		Now:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Step:   16 * time.Millisecond,
		mapW:   4000,
		mapH:   4000,
		seed:   1,
	}
	for _, o := range opts {
		if o.kind == tourOptInfra {
			o.fn(tt)
		}
	}
	for _, o := range opts {
		if o.kind == tourOptData {
			o.fn(tt)
		}
	}
	if len(tt.records) == 0 {
		records, err := assets.LoadDataset("")
		if err != nil {
			return nil, err
		}
		tt.records = records
		if !tt.mapSet {
			tt.mapW, tt.mapH = assets.FallbackMapWidth, assets.FallbackMapHeight
		}
	}
	if tt.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		tt.logger = l
	}

	fog := NewFogMask(tt.mapW, tt.mapH, tt.Config.FogColor.A)
	reg := NewRegistry(tt.records, tt.Config.MarkerRadius)
	tt.Explorer = NewExplorer(tt.Config, fog, reg, tt.Now,
		WithMeasurer(FixedMeasurer{CharWidth: 10, Line: 24}),
		WithClipboard(tt.Clip),
		WithRand(rand.New(rand.NewSource(tt.seed))), // #nosec G404 -- test harness
		WithLogger(tt.logger),
	)
	tt.Log = tt.Explorer.Log()
	return tt, nil
}

// Elapsed is the synthetic time since the tour started.
func (tt *TestTour) Elapsed() time.Duration {
	return tt.Explorer.since(tt.Now)
}

// Send delivers one input event at the current synthetic time.
func (tt *TestTour) Send(ev Event) {
	tt.Explorer.HandleEvent(ev, tt.Now)
}

// tick advances the clock by d and ticks the explorer once.
func (tt *TestTour) tick(d time.Duration) {
	tt.Now = tt.Now.Add(d)
	tt.Explorer.Tick(tt.Now)
}

// Advance moves the clock forward by d in Step-sized ticks.
func (tt *TestTour) Advance(d time.Duration) {
	for d > 0 {
		step := min(tt.Step, d)
		tt.tick(step)
		d -= step
	}
}

// RunUntil ticks up to maxTicks times, stopping as soon as predicate holds.
// It returns the number of ticks run, or -1 if the predicate never held.
func (tt *TestTour) RunUntil(predicate func(*TestTour) bool, maxTicks int) int {
	for i := 1; i <= maxTicks; i++ {
		tt.tick(tt.Step)
		if predicate(tt) {
			return i
		}
	}
	return -1
}

// ClickAt presses and releases the left button at a screen position.
func (tt *TestTour) ClickAt(pos Point) {
	tt.Send(PointerDownEvent{Pos: pos, Button: ButtonLeft})
	tt.Send(PointerUpEvent{Pos: pos, Button: ButtonLeft})
}

// ClickPOI zooms the camera in on p and clicks its marker. It reports whether
// a card for p is now open.
func (tt *TestTour) ClickPOI(p *POI) bool {
	x := tt.Explorer
	if !p.Visible() {
		return false
	}
	x.Camera().Focus(p.Pos, x.Camera().MinWidth())
	tt.ClickAt(x.MarkerRect(p).Center())
	return x.Card() != nil && x.Card().POI == p
}

// ConfirmCard waits for the open card to settle and presses its button.
func (tt *TestTour) ConfirmCard() bool {
	x := tt.Explorer
	if x.Card() == nil {
		return false
	}
	if tt.RunUntil(func(tt *TestTour) bool { return x.Card().State() == CardIdle }, 1000) < 0 {
		return false
	}
	btn := x.Card().ButtonRect().Center()
	tt.Send(PointerMoveEvent{Pos: btn, Delta: btn.Sub(x.Cursor())})
	tt.ClickAt(btn)
	return x.Card() == nil || x.Card().State() == CardDisappearing
}

// Front returns the first POI in sequence order that is not completed.
func (tt *TestTour) Front() *POI {
	return tt.Explorer.POIs().NextToReveal(-1)
}

// CompleteFront opens, confirms and waits out the front POI: its card closes,
// its shake ends and the resulting reveal finishes. It returns the completed
// POI, or nil if there was nothing left to do or the front is not visible.
func (tt *TestTour) CompleteFront() *POI {
	p := tt.Front()
	if p == nil || !tt.ClickPOI(p) || !tt.ConfirmCard() {
		return nil
	}
	x := tt.Explorer
	limit := int((tt.Config.ShakeDuration+tt.Config.RevealDuration+tt.Config.CardSizeAnim)/tt.Step) + 10
	tt.RunUntil(func(tt *TestTour) bool {
		return p.Completed() && !p.Shaking() && x.Card() == nil && len(x.Reveals()) == 0
	}, limit)
	if !p.Completed() {
		return nil
	}
	return p
}

// Run completes POIs front to back until none is left and returns them in
// completion order.
func (tt *TestTour) Run() []*POI {
	var order []*POI
	for range tt.Explorer.POIs().Len() {
		p := tt.CompleteFront()
		if p == nil {
			break
		}
		order = append(order, p)
	}
	return order
}
