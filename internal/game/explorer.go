package game

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"
)

// Clipboard receives copied card text.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Explorer is the application state: camera, fog, POIs, running animations and
// the info card, plus the input controller that mutates them. It has no
// display dependency; Game wraps it for ebiten and tests drive it directly.
type Explorer struct {
	cfg     Config
	camera  *Camera
	fog     *FogMask
	pois    *Registry
	reveals []*RevealAnimation
	card    *InfoCard

	measure TextMeasurer
	clip    Clipboard
	rng     *rand.Rand
	log     *TourLog
	logger  logrus.FieldLogger
	start   time.Time

	cursor   Point
	dragging bool
	pressed  *POI // marker under a button-down that may still become a click
}

// ExplorerOption customises an Explorer at construction.
type ExplorerOption func(*Explorer)

// WithMeasurer sets the text measurer used to wrap card descriptions.
func WithMeasurer(m TextMeasurer) ExplorerOption {
	return func(x *Explorer) { x.measure = m }
}

// WithClipboard replaces the system clipboard.
func WithClipboard(c Clipboard) ExplorerOption {
	return func(x *Explorer) { x.clip = c }
}

// WithRand sets the jitter random source.
func WithRand(r *rand.Rand) ExplorerOption {
	return func(x *Explorer) { x.rng = r }
}

// WithLogger sets the structured logger.
func WithLogger(l logrus.FieldLogger) ExplorerOption {
	return func(x *Explorer) { x.logger = l }
}

// NewExplorer wires the core state together. The map extent is the fog
// mask's size; the camera starts at its widest view.
func NewExplorer(cfg Config, fog *FogMask, pois *Registry, now time.Time, opts ...ExplorerOption) *Explorer {
	w, h := fog.Size()
	x := &Explorer{
		cfg:     cfg,
		camera:  NewCamera(float64(w), float64(h), cfg.ScreenWidth, cfg.ScreenHeight),
		fog:     fog,
		pois:    pois,
		measure: FixedMeasurer{CharWidth: 10, Line: 24},
		clip:    systemClipboard{},
		rng:     rand.New(rand.NewSource(now.UnixNano())), // #nosec G404 -- cosmetic jitter
		log:     NewTourLog(),
		logger:  logrus.StandardLogger(),
		start:   now,
	}
	for _, o := range opts {
		o(x)
	}
	return x
}

func (x *Explorer) Config() Config              { return x.cfg }
func (x *Explorer) Camera() *Camera             { return x.camera }
func (x *Explorer) Fog() *FogMask               { return x.fog }
func (x *Explorer) POIs() *Registry             { return x.pois }
func (x *Explorer) Card() *InfoCard             { return x.card }
func (x *Explorer) Reveals() []*RevealAnimation { return x.reveals }
func (x *Explorer) Log() *TourLog               { return x.log }
func (x *Explorer) Cursor() Point               { return x.cursor }
func (x *Explorer) Dragging() bool              { return x.dragging }

func (x *Explorer) since(now time.Time) time.Duration { return now.Sub(x.start) }

// MarkerRect is the POI marker's screen rectangle, including any jitter.
func (x *Explorer) MarkerRect(p *POI) Rect {
	c := x.camera.MapToScreen(p.Pos)
	c.X += p.ShakeOffset()
	w, h := p.Marker.Size()
	return RectCentered(c, w, h)
}

// OnScreen reports whether p's marker is drawn and clickable.
func (x *Explorer) OnScreen(p *POI) bool {
	return p.Visible() && x.camera.Contains(p.Pos)
}

// markerAt returns the first on-screen marker containing a screen point.
func (x *Explorer) markerAt(pos Point) *POI {
	for _, p := range x.pois.All() {
		if x.OnScreen(p) && x.MarkerRect(p).Contains(pos) {
			return p
		}
	}
	return nil
}

// HandleEvent applies one input event.
func (x *Explorer) HandleEvent(ev Event, now time.Time) {
	switch e := ev.(type) {
	case ResizeEvent:
		x.camera.Resize(e.Width, e.Height)
		if x.card != nil {
			x.card.Reposition(e.Width, e.Height)
		}
		x.log.Add(x.since(now), "--", "camera", "resize", fmt.Sprintf("%dx%d", e.Width, e.Height), 0)

	case PointerDownEvent:
		x.cursor = e.Pos
		if x.card != nil {
			if x.card.State() == CardIdle && x.card.ButtonRect().Contains(e.Pos) {
				x.confirmCard(now)
			}
			return
		}
		if e.Button != ButtonLeft {
			return
		}
		if p := x.markerAt(e.Pos); p != nil {
			x.pressed = p
		} else {
			x.dragging = true
		}

	case PointerUpEvent:
		x.cursor = e.Pos
		if e.Button != ButtonLeft {
			return
		}
		if x.pressed != nil && x.card == nil && x.MarkerRect(x.pressed).Contains(e.Pos) {
			x.openCard(x.pressed, now)
		}
		x.dragging = false
		x.pressed = nil

	case PointerMoveEvent:
		x.cursor = e.Pos
		if x.pressed != nil && !x.dragging {
			x.dragging = true
			x.pressed = nil
		}
		if x.dragging && x.card == nil {
			x.camera.Pan(e.Delta)
		}

	case WheelEvent:
		x.cursor = e.Pos
		if x.card != nil {
			if x.card.Rect().Contains(e.Pos) {
				x.card.Scroll(e.DY, x.cfg.ScrollPerNotch)
			}
			return
		}
		switch {
		case e.DY > 0:
			x.camera.Zoom(-1, e.Pos)
		case e.DY < 0:
			x.camera.Zoom(1, e.Pos)
		}

	case CopyEvent:
		x.copyCard()
	}
}

func (x *Explorer) openCard(p *POI, now time.Time) {
	sw, sh := x.camera.Screen()
	x.card = NewInfoCard(p, now, sw, sh, x.measure, x.cfg)
	x.log.Add(x.since(now), p.ID, "card", "open", p.Name, 0)
}

// confirmCard is the card's action button: shake an unfinished POI, then close.
func (x *Explorer) confirmCard(now time.Time) {
	p := x.card.POI
	if !p.Completed() && p.StartShake(now) {
		x.log.Add(x.since(now), p.ID, "poi", "shake", "start", 0)
	}
	if x.card.StartDisappearing(now) {
		x.log.Add(x.since(now), p.ID, "card", "dismiss", "", 0)
	}
}

func (x *Explorer) copyCard() {
	if x.card == nil {
		return
	}
	p := x.card.POI
	text := strings.TrimSpace(p.Name + "\n\n" + p.Description)
	if err := x.clip.WriteAll(text); err != nil {
		x.logger.WithError(err).WithField("poi", p.ID).Warn("copying card text")
	}
}

// Tick advances every time-based animation to now: card, shakes, reveals.
func (x *Explorer) Tick(now time.Time) {
	if x.card != nil {
		x.card.Update(now, x.cursor)
		if x.card.Finished(now) {
			x.log.Add(x.since(now), x.card.POI.ID, "card", "closed", "", 0)
			x.card = nil
		}
	}

	for _, p := range x.pois.All() {
		if p.UpdateShake(now, x.cfg.ShakeDuration, x.cfg.ShakeAmplitude, x.rng) {
			x.Complete(p, now)
		}
	}

	kept := x.reveals[:0]
	for _, a := range x.reveals {
		if a.Tick(now, x.fog) {
			x.log.Add(x.since(now), "--", "reveal", "done", fmt.Sprintf("r=%.1f", a.FinalRadius), a.FinalRadius)
			continue
		}
		kept = append(kept, a)
	}
	x.reveals = kept
}

// Complete marks p completed, starts the fog reveal towards the next POI and
// immediately makes every POI within the final radius visible. Completing a
// POI twice does nothing and returns nil.
func (x *Explorer) Complete(p *POI, now time.Time) *RevealAnimation {
	if !x.pois.markCompleted(p) {
		return nil
	}
	at := x.since(now)
	x.log.Add(at, p.ID, "poi", "complete", p.Name, float64(p.Index))

	radius, next := x.pois.RevealRadius(p, x.cfg.RevealPadding, x.cfg.FallbackRadius)
	anim := NewRevealAnimation(p.Pos, radius, now, x.cfg.RevealDuration)
	x.reveals = append(x.reveals, anim)
	nextID := "--"
	if next != nil {
		nextID = next.ID
	}
	x.log.Add(at, p.ID, "reveal", "start", fmt.Sprintf("r=%.1f next=%s", radius, nextID), radius)

	revealed := x.pois.RevealArea(p.Pos, radius)
	for _, q := range revealed {
		x.log.Add(at, q.ID, "poi", "visible", "from "+p.ID, float64(q.Index))
	}
	x.logger.WithFields(logrus.Fields{
		"poi":      p.ID,
		"radius":   radius,
		"next":     nextID,
		"revealed": len(revealed),
	}).Info("poi completed")
	return anim
}
