package game

import (
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/city-explorer/internal/assets"
)

// MarkerKind selects how a POI is drawn on the map.
type MarkerKind int

const (
	MarkerCircle MarkerKind = iota // programmatic disc, used when no icon exists
	MarkerIcon                     // outline + fill image pair
)

// Marker is the on-map representation of a POI.
type Marker struct {
	Kind    MarkerKind
	Outline *ebiten.Image // MarkerIcon only
	Fill    *ebiten.Image // MarkerIcon only; tinted by completion state
	Radius  float64       // MarkerCircle only
	Side    float64       // MarkerIcon only; icons are square
}

// CircleMarker returns the fallback disc marker.
func CircleMarker(radius float64) Marker {
	return Marker{Kind: MarkerCircle, Radius: radius}
}

// IconMarker returns an icon marker of the given side length.
func IconMarker(outline, fill *ebiten.Image, side float64) Marker {
	return Marker{Kind: MarkerIcon, Outline: outline, Fill: fill, Side: side}
}

// Size returns the marker's screen footprint.
func (m Marker) Size() (float64, float64) {
	if m.Kind == MarkerIcon {
		return m.Side, m.Side
	}
	return m.Radius * 2, m.Radius * 2
}

// POI is a point of interest. Visibility and completion only ever flip from
// false to true.
type POI struct {
	ID          string
	Name        string
	Description string
	Image       string // illustration path relative to the assets dir, may be empty
	Pos         Point
	Index       int
	Marker      Marker

	visible   bool
	completed bool

	shaking     bool
	shakeStart  time.Time
	shakeOffset float64
}

func (p *POI) Visible() bool   { return p.visible }
func (p *POI) Completed() bool { return p.completed }
func (p *POI) Shaking() bool   { return p.shaking }

// ShakeOffset is the current horizontal jitter in screen pixels.
func (p *POI) ShakeOffset() float64 { return p.shakeOffset }

// StartShake begins the confirmation jitter. It is ignored for completed or
// already shaking POIs.
func (p *POI) StartShake(now time.Time) bool {
	if p.shaking || p.completed {
		return false
	}
	p.shaking = true
	p.shakeStart = now
	p.shakeOffset = 0
	return true
}

// UpdateShake advances the jitter. The amplitude ramps linearly from 0 to
// amplitude over d. It returns true on the tick the shake ends, after which
// the marker is back at rest.
func (p *POI) UpdateShake(now time.Time, d time.Duration, amplitude float64, rng *rand.Rand) bool {
	if !p.shaking {
		return false
	}
	elapsed := now.Sub(p.shakeStart)
	if elapsed < d {
		mag := float64(elapsed) / float64(d) * amplitude
		p.shakeOffset = (rng.Float64()*2 - 1) * mag
		return false
	}
	p.shaking = false
	p.shakeOffset = 0
	return true
}

// Registry is the ordered POI collection. Index i holds the POI with
// sequence index i.
type Registry struct {
	pois []*POI
	byID map[string]*POI
}

// NewRegistry creates POIs from dataset records in order. Only the first one
// starts visible. Every POI starts with a circle marker.
func NewRegistry(records []assets.Record, markerRadius float64) *Registry {
	r := &Registry{
		pois: make([]*POI, 0, len(records)),
		byID: make(map[string]*POI, len(records)),
	}
	for i, rec := range records {
		p := &POI{
			ID:          rec.ID,
			Name:        rec.Name,
			Description: rec.Description,
			Image:       rec.Image,
			Pos:         Pt(float64(rec.Pos[0]), float64(rec.Pos[1])),
			Index:       i,
			Marker:      CircleMarker(markerRadius),
			visible:     i == 0,
		}
		r.pois = append(r.pois, p)
		r.byID[p.ID] = p
	}
	return r
}

// Len returns the number of POIs.
func (r *Registry) Len() int { return len(r.pois) }

// All returns the POIs in sequence order. The slice must not be modified.
func (r *Registry) All() []*POI { return r.pois }

// At returns the POI with the given sequence index, or nil.
func (r *Registry) At(i int) *POI {
	if i < 0 || i >= len(r.pois) {
		return nil
	}
	return r.pois[i]
}

// ByID looks up a POI by its stable key.
func (r *Registry) ByID(id string) *POI { return r.byID[id] }

// RevealArea marks visible every hidden POI inside the square bounding the
// disc of radius around center, and returns the newly visible ones.
// The test is against the bounding box, not the circle.
func (r *Registry) RevealArea(center Point, radius float64) []*POI {
	box := Rect{X: center.X - radius, Y: center.Y - radius, W: radius * 2, H: radius * 2}
	var revealed []*POI
	for _, p := range r.pois {
		if !p.visible && box.Contains(p.Pos) {
			p.visible = true
			revealed = append(revealed, p)
		}
	}
	return revealed
}

// NextToReveal scans sequence indices after `after`, wrapping around, and
// returns the first POI that is not completed, or nil if all are.
func (r *Registry) NextToReveal(after int) *POI {
	n := len(r.pois)
	for i := 0; i < n; i++ {
		idx := ((after+1+i)%n + n) % n
		if p := r.pois[idx]; !p.completed {
			return p
		}
	}
	return nil
}

// RevealRadius is the fog radius opened when p is completed: the distance to
// the next unfinished POI plus padding, or fallback when none is left.
// It must be called after p is marked completed.
func (r *Registry) RevealRadius(p *POI, padding, fallback float64) (float64, *POI) {
	next := r.NextToReveal(p.Index)
	if next == nil {
		return fallback, nil
	}
	return p.Pos.Dist(next.Pos) + padding, next
}

// markCompleted flips p to completed. It reports false if p already was.
func (r *Registry) markCompleted(p *POI) bool {
	if p.completed {
		return false
	}
	p.completed = true
	return true
}

// CompletedCount returns how many POIs are completed.
func (r *Registry) CompletedCount() int {
	n := 0
	for _, p := range r.pois {
		if p.completed {
			n++
		}
	}
	return n
}

// VisibleCount returns how many POIs are visible.
func (r *Registry) VisibleCount() int {
	n := 0
	for _, p := range r.pois {
		if p.visible {
			n++
		}
	}
	return n
}
