package game

import "math"

// Camera is the window into map space that is currently shown on screen.
//
// The view rectangle always has the screen's aspect ratio, so one uniform
// scale converts map units to screen pixels on both axes. Every mutation ends
// with Clamp, which keeps the view inside the map (or centred on an axis where
// the view is larger than the map).
type Camera struct {
	view Rect

	mapW, mapH       float64
	screenW, screenH int

	zoomOutFactor float64 // width multiplier for direction > 0
	zoomInFactor  float64 // width multiplier for direction < 0
	minDivisor    float64 // min width = map width / minDivisor
}

// NewCamera builds a camera for a mapW×mapH map shown on a screenW×screenH
// screen, initialised to the widest allowed view.
func NewCamera(mapW, mapH float64, screenW, screenH int) *Camera {
	c := &Camera{
		mapW:          mapW,
		mapH:          mapH,
		screenW:       screenW,
		screenH:       screenH,
		zoomOutFactor: 1.25,
		zoomInFactor:  0.8,
		minDivisor:    15,
	}
	c.RecalculateAspect(0)
	return c
}

// View returns the current map-space view rectangle.
func (c *Camera) View() Rect { return c.view }

// Screen returns the current screen size in pixels.
func (c *Camera) Screen() (int, int) { return c.screenW, c.screenH }

// MapSize returns the map extent.
func (c *Camera) MapSize() (float64, float64) { return c.mapW, c.mapH }

// Valid reports whether the camera geometry can be used for rendering: a
// non-degenerate screen and view. Frames are skipped while it is false.
func (c *Camera) Valid() bool {
	return c.screenW > 0 && c.screenH > 0 && c.view.W > 0 && c.view.H > 0
}

func (c *Camera) aspect() (float64, bool) {
	if c.screenW <= 0 || c.screenH <= 0 {
		return 0, false
	}
	return float64(c.screenW) / float64(c.screenH), true
}

// Scale is the number of screen pixels per map unit, or 0 when degenerate.
func (c *Camera) Scale() float64 {
	if !c.Valid() {
		return 0
	}
	return float64(c.screenW) / c.view.W
}

// MinWidth is the narrowest view allowed (deepest zoom).
func (c *Camera) MinWidth() float64 {
	return c.mapW / c.minDivisor
}

// MaxWidth is the smallest view width that covers the whole map on the
// covering axis for the current screen aspect.
func (c *Camera) MaxWidth() float64 {
	aspect, ok := c.aspect()
	if !ok || c.mapH <= 0 {
		return c.mapW
	}
	if aspect > c.mapW/c.mapH {
		return c.mapH * aspect
	}
	return c.mapW
}

func (c *Camera) clampWidth(w float64) float64 {
	return math.Max(c.MinWidth(), math.Min(w, c.MaxWidth()))
}

// MapToScreen converts a map-space point to screen pixels.
func (c *Camera) MapToScreen(p Point) Point {
	s := c.Scale()
	return Point{(p.X - c.view.X) * s, (p.Y - c.view.Y) * s}
}

// ScreenToMap is the exact inverse of MapToScreen.
func (c *Camera) ScreenToMap(p Point) Point {
	if !c.Valid() {
		return Point{c.view.X, c.view.Y}
	}
	inv := c.view.W / float64(c.screenW)
	return Point{p.X*inv + c.view.X, p.Y*inv + c.view.Y}
}

// Contains reports whether a map point is inside the view.
func (c *Camera) Contains(p Point) bool {
	return c.view.Contains(p)
}

// RecalculateAspect sets the view width (0 selects MaxWidth), derives the
// height from the screen aspect and keeps the view centre where it was.
func (c *Camera) RecalculateAspect(width float64) {
	aspect, ok := c.aspect()
	if !ok {
		return
	}
	if width <= 0 {
		width = c.MaxWidth()
	}
	center := c.view.Center()
	width = c.clampWidth(width)
	c.view = RectCentered(center, width, width/aspect)
	c.Clamp()
}

// Zoom scales the view around a screen pivot. direction > 0 zooms out,
// direction < 0 zooms in, 0 does nothing. The map point under the pivot stays
// under the pivot unless a bound is hit.
func (c *Camera) Zoom(direction float64, pivot Point) {
	if direction == 0 || !c.Valid() {
		return
	}
	aspect, _ := c.aspect()
	anchor := c.ScreenToMap(pivot)

	factor := c.zoomInFactor
	if direction > 0 {
		factor = c.zoomOutFactor
	}
	w := c.clampWidth(c.view.W * factor)
	c.view.W = w
	c.view.H = w / aspect

	inv := w / float64(c.screenW)
	c.view.X = anchor.X - pivot.X*inv
	c.view.Y = anchor.Y - pivot.Y*inv
	c.Clamp()
}

// Pan moves the view by a screen-space delta (dragging right moves the map right).
func (c *Camera) Pan(delta Point) {
	if !c.Valid() {
		return
	}
	inv := c.view.W / float64(c.screenW)
	c.view.X -= delta.X * inv
	c.view.Y -= delta.Y * inv
	c.Clamp()
}

// Resize adapts the view to a new screen size, keeping its width and centre.
// A degenerate size is recorded but leaves the view untouched.
func (c *Camera) Resize(screenW, screenH int) {
	c.screenW, c.screenH = screenW, screenH
	if _, ok := c.aspect(); !ok {
		return
	}
	c.RecalculateAspect(c.view.W)
}

// Focus centres the view on a map point at the given width.
func (c *Camera) Focus(center Point, width float64) {
	aspect, ok := c.aspect()
	if !ok {
		return
	}
	width = c.clampWidth(width)
	c.view = RectCentered(center, width, width/aspect)
	c.Clamp()
}

// Clamp keeps the view inside the map. On an axis where the view is at least
// as large as the map it is centred instead. Clamp is idempotent.
func (c *Camera) Clamp() {
	c.view.X = clampAxis(c.view.X, c.view.W, c.mapW)
	c.view.Y = clampAxis(c.view.Y, c.view.H, c.mapH)
}

func clampAxis(pos, size, extent float64) float64 {
	if size >= extent {
		return (extent - size) / 2
	}
	if pos < 0 {
		pos = 0
	}
	if pos+size > extent {
		pos = extent - size
	}
	return pos
}
