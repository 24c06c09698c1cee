package game

import (
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/city-explorer/internal/assets"
)

// Card font sizes in points.
const (
	titleFontSize = 32
	bodyFontSize  = 20
)

// Options configures New.
type Options struct {
	Config      Config
	AssetsDir   string
	DatasetPath string // empty uses the embedded dataset
	Lang        string
	Seed        int64 // 0 seeds from the clock
	Logger      *logrus.Logger
}

// Game adapts an Explorer to ebiten: it polls input into events, ticks the
// explorer with the wall clock and hands frames to the Renderer.
type Game struct {
	explorer *Explorer
	renderer *Renderer
	feed     *EventFeed
	tr       *assets.Translator
	icon     image.Image
	log      logrus.FieldLogger

	width, height int
	pendingW      int
	pendingH      int

	prevCursor Point
	haveCursor bool
	showHUD    bool
	showFeed   bool
	now        func() time.Time
}

var mouseButtons = []struct {
	eb  ebiten.MouseButton
	btn MouseButton
}{
	{ebiten.MouseButtonLeft, ButtonLeft},
	{ebiten.MouseButtonRight, ButtonRight},
	{ebiten.MouseButtonMiddle, ButtonMiddle},
}

// New loads assets and builds the game. Missing or broken assets never fail
// construction; they are replaced by fallbacks and logged.
func New(opts Options) *Game {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	log := logger.WithField("component", "game")
	loader := assets.NewLoader(opts.AssetsDir, logger)

	records, err := assets.LoadDataset(opts.DatasetPath)
	if err != nil {
		log.WithError(err).WithField("path", opts.DatasetPath).Warn("using embedded dataset")
		records, _ = assets.LoadDataset("")
	}

	mapImg := loader.Map()
	mb := mapImg.Bounds()
	var fog *FogMask
	if img, ok := loader.Fog(); ok {
		fog = NewFogMaskFromImage(mb.Dx(), mb.Dy(), img, cfg.FogColor.A)
	} else {
		fog = NewFogMask(mb.Dx(), mb.Dy(), cfg.FogColor.A)
	}
	if err := assets.CheckBounds(records, mb.Dx(), mb.Dy()); err != nil {
		log.WithError(err).Warn("dataset does not fit the map")
	}

	pois := NewRegistry(records, cfg.MarkerRadius)
	side := int(cfg.IconSize)
	for _, p := range pois.All() {
		if outline, fill, ok := loader.Icon(p.ID, side); ok {
			p.Marker = IconMarker(ebiten.NewImageFromImage(outline), ebiten.NewImageFromImage(fill), cfg.IconSize)
		}
	}

	lang := opts.Lang
	if lang == "" {
		lang = assets.DefaultLanguage
	}
	tr, err := assets.NewTranslator(lang)
	if err != nil {
		log.WithError(err).Warn("untranslated UI")
	}

	now := time.Now()
	seed := opts.Seed
	if seed == 0 {
		seed = now.UnixNano()
	}
	renderer := NewRenderer(cfg, mapImg, loader.Faces(titleFontSize, bodyFontSize), tr, loader)
	explorer := NewExplorer(cfg, fog, pois, now,
		WithMeasurer(renderer.Measurer()),
		WithRand(rand.New(rand.NewSource(seed))), // #nosec G404 -- cosmetic jitter
		WithLogger(logger),
	)

	g := &Game{
		explorer: explorer,
		renderer: renderer,
		feed:     NewEventFeed(),
		tr:       tr,
		log:      log,
		width:    cfg.ScreenWidth,
		height:   cfg.ScreenHeight,
		pendingW: cfg.ScreenWidth,
		pendingH: cfg.ScreenHeight,
		showHUD:  true,
		now:      time.Now,
	}
	if icon, ok := loader.WindowIcon(); ok {
		g.icon = icon
	}
	log.WithFields(logrus.Fields{
		"pois": pois.Len(),
		"map":  fmt.Sprintf("%dx%d", mb.Dx(), mb.Dy()),
		"lang": tr.Lang(),
	}).Info("explorer ready")
	return g
}

// Explorer exposes the underlying state.
func (g *Game) Explorer() *Explorer { return g.explorer }

// Title is the localised window title.
func (g *Game) Title() string { return g.tr.Get("Interactive Map of Curitiba") }

// WindowIcons returns the window icon set, empty when no icon asset exists.
func (g *Game) WindowIcons() []image.Image {
	if g.icon == nil {
		return nil
	}
	return []image.Image{g.icon}
}

func (g *Game) Update() error {
	now := g.now()
	x := g.explorer

	// Resizes observed by Layout are applied at the tick boundary.
	if g.pendingW != g.width || g.pendingH != g.height {
		g.width, g.height = g.pendingW, g.pendingH
		x.HandleEvent(ResizeEvent{Width: g.width, Height: g.height}, now)
	}

	mx, my := ebiten.CursorPosition()
	cur := Pt(float64(mx), float64(my))
	if !g.haveCursor {
		g.prevCursor = cur
		g.haveCursor = true
	}
	if d := cur.Sub(g.prevCursor); d != (Point{}) {
		x.HandleEvent(PointerMoveEvent{Pos: cur, Delta: d}, now)
	}
	g.prevCursor = cur

	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			x.HandleEvent(PointerDownEvent{Pos: cur, Button: b.btn}, now)
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			x.HandleEvent(PointerUpEvent{Pos: cur, Button: b.btn}, now)
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		x.HandleEvent(WheelEvent{Pos: cur, DY: wy}, now)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		x.HandleEvent(CopyEvent{}, now)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.showFeed = !g.showFeed
	}

	x.Tick(now)
	g.feed.Sync(x.Log())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.explorer, g.now())
	if g.showFeed && g.explorer.Camera().Valid() {
		w, h := g.explorer.Camera().Screen()
		g.feed.Draw(screen, w, h)
	}
	if g.showHUD {
		g.drawHUD(screen)
	}
}

// drawHUD prints tour progress and the key legend in the top-left corner.
func (g *Game) drawHUD(screen *ebiten.Image) {
	pois := g.explorer.POIs()
	cam := g.explorer.Camera()
	zoom := 0.0
	if w, _ := cam.MapSize(); cam.View().W > 0 {
		zoom = w / cam.View().W
	}
	msg := fmt.Sprintf("%s: %d/%d  zoom %.2fx\nC=copy card  L=log  H=hide",
		g.tr.Get("Completed"), pois.CompletedCount(), pois.Len(), zoom)
	ebitenutil.DebugPrintAt(screen, msg, 6, 6)
}

// Layout tracks the window size one-to-one; a change becomes a ResizeEvent
// on the next Update.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.pendingW, g.pendingH = outsideWidth, outsideHeight
	return max(outsideWidth, 1), max(outsideHeight, 1)
}
