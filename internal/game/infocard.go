package game

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Info card geometry, in card-local pixels.
const (
	cardW          = 500
	cardH          = 550
	cardButtonW    = 150
	cardButtonH    = 50
	cardButtonGap  = 20 // bottom margin under the button
	cardTitleTop   = 20
	cardImageW     = 400
	cardImageH     = 200
	cardImageGap   = 15 // between title and illustration
	cardTextX      = 30
	cardTextY      = 300
	cardTextW      = cardW - 2*cardTextX
	cardTextH      = 180
	cardScaleEnter = 0.1 // appearing starts at 110%
	cardScaleExit  = 0.1 // disappearing ends at 90%
)

// CardState is the lifecycle stage of the info card.
type CardState int

const (
	CardAppearing CardState = iota
	CardIdle
	CardDisappearing
)

func (s CardState) String() string {
	switch s {
	case CardAppearing:
		return "appearing"
	case CardIdle:
		return "idle"
	case CardDisappearing:
		return "disappearing"
	}
	return "unknown"
}

// TextMeasurer reports rendered text metrics for word wrapping.
type TextMeasurer interface {
	Advance(s string) float64
	LineHeight() float64
}

// FixedMeasurer measures every rune as the same width. Used headless and in tests.
type FixedMeasurer struct {
	CharWidth float64
	Line      float64
}

func (m FixedMeasurer) Advance(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * m.CharWidth
}

func (m FixedMeasurer) LineHeight() float64 { return m.Line }

// wrapText greedily breaks text on spaces so each line is narrower than maxWidth.
// A single word wider than maxWidth gets a line of its own.
func wrapText(text string, maxWidth float64, m TextMeasurer) []string {
	words := strings.Split(text, " ")
	var lines []string
	current := ""
	for _, w := range words {
		candidate := current + w + " "
		if current == "" || m.Advance(candidate) < maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, strings.TrimSpace(current))
		current = w + " "
	}
	lines = append(lines, strings.TrimSpace(current))
	return lines
}

// InfoCard is the modal panel describing one POI.
type InfoCard struct {
	POI *POI

	state     CardState
	animStart time.Time
	sizeDur   time.Duration
	fadeDur   time.Duration

	rect       Rect // screen rect at 100% scale
	lines      []string
	lineHeight float64
	scroll     float64
	maxScroll  float64
	hover      bool
}

// NewInfoCard opens a card for p, centred on a screenW×screenH screen, with
// the description wrapped to the text viewport.
func NewInfoCard(p *POI, now time.Time, screenW, screenH int, m TextMeasurer, cfg Config) *InfoCard {
	c := &InfoCard{
		POI:       p,
		state:     CardAppearing,
		animStart: now,
		sizeDur:   cfg.CardSizeAnim,
		fadeDur:   cfg.CardFadeAnim,
	}
	c.lines = wrapText(p.Description, cardTextW, m)
	c.lineHeight = m.LineHeight()
	c.SetTextHeight(float64(len(c.lines)) * c.lineHeight)
	c.Reposition(screenW, screenH)
	return c
}

// SetTextHeight sets the height of the rendered description block and
// recomputes the scroll range.
func (c *InfoCard) SetTextHeight(h float64) {
	c.maxScroll = math.Max(0, h-cardTextH)
	c.scroll = math.Max(0, math.Min(c.scroll, c.maxScroll))
}

func (c *InfoCard) State() CardState    { return c.state }
func (c *InfoCard) Lines() []string     { return c.lines }
func (c *InfoCard) LineHeight() float64 { return c.lineHeight }
func (c *InfoCard) ScrollY() float64    { return c.scroll }
func (c *InfoCard) MaxScroll() float64  { return c.maxScroll }
func (c *InfoCard) Hovered() bool       { return c.hover }

// Rect is the card's screen rectangle at full size.
func (c *InfoCard) Rect() Rect { return c.rect }

// ButtonRect is the action button in screen coordinates.
func (c *InfoCard) ButtonRect() Rect {
	b := cardButtonRect()
	b.X += c.rect.X
	b.Y += c.rect.Y
	return b
}

func cardButtonRect() Rect {
	return Rect{
		X: (cardW - cardButtonW) / 2,
		Y: cardH - cardButtonGap - cardButtonH,
		W: cardButtonW,
		H: cardButtonH,
	}
}

// Reposition recentres the card on a new screen size.
func (c *InfoCard) Reposition(screenW, screenH int) {
	c.rect = Rect{
		X: float64(screenW/2 - cardW/2),
		Y: float64(screenH/2 - cardH/2),
		W: cardW,
		H: cardH,
	}
}

// Update advances the state machine and tracks button hover while idle.
func (c *InfoCard) Update(now time.Time, cursor Point) {
	if c.state == CardAppearing && now.Sub(c.animStart) >= c.sizeDur {
		c.state = CardIdle
	}
	c.hover = c.state == CardIdle && c.ButtonRect().Contains(cursor)
}

// Transform returns the draw scale and opacity for the current time.
func (c *InfoCard) Transform(now time.Time) (scale, alpha float64) {
	elapsed := now.Sub(c.animStart)
	size := progress(elapsed, c.sizeDur)
	fade := progress(elapsed, c.fadeDur)
	switch c.state {
	case CardAppearing:
		return 1 + cardScaleEnter - cardScaleEnter*easeOutCubic(size), fade
	case CardDisappearing:
		return 1 - cardScaleExit*easeOutCubic(size), 1 - fade
	}
	return 1, 1
}

func progress(elapsed, d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	return math.Max(0, math.Min(float64(elapsed)/float64(d), 1))
}

// StartDisappearing begins the exit animation. Only an idle card can leave.
func (c *InfoCard) StartDisappearing(now time.Time) bool {
	if c.state != CardIdle {
		return false
	}
	c.state = CardDisappearing
	c.animStart = now
	c.hover = false
	return true
}

// Finished reports whether the exit animation has run its course.
func (c *InfoCard) Finished(now time.Time) bool {
	return c.state == CardDisappearing && now.Sub(c.animStart) > c.sizeDur
}

// Scroll applies a wheel delta; positive dy (wheel up) scrolls towards the top.
func (c *InfoCard) Scroll(dy, perNotch float64) {
	c.scroll -= dy * perNotch
	c.scroll = math.Max(0, math.Min(c.scroll, c.maxScroll))
}
