package game

import (
	"math"
	"time"
)

// Puncher is anything a reveal can clear holes in.
type Puncher interface {
	Punch(center Point, radius float64)
}

// RevealAnimation grows a transparent hole in the fog from radius 0 to
// FinalRadius over Duration. The radius is a pure function of wall-clock
// elapsed time, so the tick rate only affects smoothness.
type RevealAnimation struct {
	Center      Point
	FinalRadius float64
	Start       time.Time
	Duration    time.Duration

	done       bool
	lastRadius float64
}

// NewRevealAnimation starts a reveal at now.
func NewRevealAnimation(center Point, finalRadius float64, now time.Time, d time.Duration) *RevealAnimation {
	return &RevealAnimation{
		Center:      center,
		FinalRadius: finalRadius,
		Start:       now,
		Duration:    d,
	}
}

// easeOutCubic maps t in [0,1] to 1-(1-t)^3.
func easeOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// RadiusAt returns the hole radius after elapsed time.
func (a *RevealAnimation) RadiusAt(elapsed time.Duration) float64 {
	if elapsed >= a.Duration || a.Duration <= 0 {
		return a.FinalRadius
	}
	if elapsed <= 0 {
		return 0
	}
	t := float64(elapsed) / float64(a.Duration)
	return a.FinalRadius * easeOutCubic(t)
}

// Done reports whether the final radius has been punched.
func (a *RevealAnimation) Done() bool { return a.done }

// LastRadius is the radius punched by the most recent tick.
func (a *RevealAnimation) LastRadius() float64 { return a.lastRadius }

// Tick punches the hole for the current time and returns true once the
// animation has finished. Once past Duration the exact final radius is
// punched, whatever the spacing of earlier ticks.
func (a *RevealAnimation) Tick(now time.Time, fog Puncher) bool {
	if a.done {
		return true
	}
	elapsed := now.Sub(a.Start)
	r := a.RadiusAt(elapsed)
	if r > 0 {
		fog.Punch(a.Center, r)
	}
	a.lastRadius = r
	if elapsed >= a.Duration {
		a.done = true
	}
	return a.done
}
