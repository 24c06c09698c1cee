package game

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/draw"

	"github.com/Garsondee/city-explorer/internal/assets"
)

var (
	markerOutline = color.RGBA{A: 255}
	cardBg        = color.RGBA{R: 7, G: 7, B: 9, A: 255}
	cardText      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	cardButtonFg  = color.RGBA{A: 255}
	cardImageBg   = color.RGBA{R: 50, G: 50, B: 50, A: 255}
)

// faceMeasurer measures text with an ebiten font face.
type faceMeasurer struct {
	face text.Face
}

func (m faceMeasurer) Advance(s string) float64 {
	w, _ := text.Measure(s, m.face, 0)
	return w
}

func (m faceMeasurer) LineHeight() float64 {
	mt := m.face.Metrics()
	return mt.HAscent + mt.HDescent + mt.HLineGap
}

// viewKey identifies what the cached map and fog views were rendered for.
type viewKey struct {
	view Rect
	w, h int
}

// Renderer composites the map, fog, markers and the info card.
//
// The map and the fog are far larger than any texture, so each is resampled
// on the CPU into a screen-sized buffer covering only the camera's clipped
// sub-rectangle, then uploaded. The buffers are only rebuilt when the camera
// moves, the screen resizes or (for the fog) a reveal changes the mask.
type Renderer struct {
	cfg    Config
	mapImg image.Image
	faces  assets.Faces
	tr     *assets.Translator
	loader *assets.Loader

	mapView, fogView *image.RGBA
	mapTex, fogTex   *ebiten.Image
	key              viewKey
	fogVersion       uint64
	haveViews        bool

	card     *cardView
	cardBuf  *ebiten.Image
	lastCard *InfoCard
}

// NewRenderer prepares a renderer for the given map raster.
func NewRenderer(cfg Config, mapImg image.Image, faces assets.Faces, tr *assets.Translator, loader *assets.Loader) *Renderer {
	return &Renderer{
		cfg:    cfg,
		mapImg: mapImg,
		faces:  faces,
		tr:     tr,
		loader: loader,
	}
}

// Measurer returns the measurer matching the card body font.
func (r *Renderer) Measurer() TextMeasurer {
	return faceMeasurer{face: r.faces.Body}
}

// Draw renders one frame. A degenerate camera produces a background-only frame.
func (r *Renderer) Draw(screen *ebiten.Image, x *Explorer, now time.Time) {
	screen.Fill(r.cfg.BackgroundColor)
	cam := x.Camera()
	if !cam.Valid() {
		return
	}
	r.refreshViews(cam, x.Fog())
	screen.DrawImage(r.mapTex, nil)
	screen.DrawImage(r.fogTex, nil)

	for _, p := range x.POIs().All() {
		if x.OnScreen(p) {
			r.drawMarker(screen, p, x.MarkerRect(p))
		}
	}

	if c := x.Card(); c != nil {
		r.drawCard(screen, c, now)
	}
}

// renderRect is the camera rectangle truncated to whole pixels and clipped to
// the map, plus where it lands on screen.
func renderRect(cam *Camera, mapBounds image.Rectangle) (src, dst image.Rectangle) {
	v := cam.View()
	iv := image.Rect(int(v.X), int(v.Y), int(v.X)+int(v.W), int(v.Y)+int(v.H))
	src = iv.Intersect(mapBounds)
	if src.Empty() {
		return src, image.Rectangle{}
	}
	s := cam.Scale()
	dx := (float64(src.Min.X) - v.X) * s
	dy := (float64(src.Min.Y) - v.Y) * s
	dst = image.Rect(int(dx), int(dy),
		int(dx)+int(float64(src.Dx())*s), int(dy)+int(float64(src.Dy())*s))
	return src, dst
}

func (r *Renderer) refreshViews(cam *Camera, fog *FogMask) {
	w, h := cam.Screen()
	if r.mapView == nil || r.mapView.Bounds().Dx() != w || r.mapView.Bounds().Dy() != h {
		if r.mapTex != nil {
			r.mapTex.Deallocate()
			r.fogTex.Deallocate()
		}
		r.mapView = image.NewRGBA(image.Rect(0, 0, w, h))
		r.fogView = image.NewRGBA(image.Rect(0, 0, w, h))
		r.mapTex = ebiten.NewImage(w, h)
		r.fogTex = ebiten.NewImage(w, h)
		r.haveViews = false
	}

	key := viewKey{view: cam.View(), w: w, h: h}
	moved := !r.haveViews || key != r.key
	fogChanged := moved || fog.Version() != r.fogVersion
	if !moved && !fogChanged {
		return
	}

	src, dst := renderRect(cam, r.mapImg.Bounds())
	if moved {
		draw.Draw(r.mapView, r.mapView.Bounds(), image.NewUniform(r.cfg.BackgroundColor), image.Point{}, draw.Src)
		if !dst.Empty() {
			r.scaleMap(dst, src, cam.Scale())
		}
		r.mapTex.WritePixels(r.mapView.Pix)
	}
	if fogChanged {
		clear(r.fogView.Pix)
		if !dst.Empty() {
			tint := r.cfg.FogColor
			tint.A = 255
			fog.Sample(r.fogView, dst, Rect{
				X: float64(src.Min.X), Y: float64(src.Min.Y),
				W: float64(src.Dx()), H: float64(src.Dy()),
			}, tint)
		}
		r.fogTex.WritePixels(r.fogView.Pix)
	}

	r.key = key
	r.fogVersion = fog.Version()
	r.haveViews = true
}

func (r *Renderer) scaleMap(dst, src image.Rectangle, scale float64) {
	if solid, ok := r.mapImg.(*assets.Solid); ok {
		draw.Draw(r.mapView, dst, image.NewUniform(solid.Color), image.Point{}, draw.Src)
		return
	}
	var s draw.Scaler = draw.NearestNeighbor
	if scale >= 1 {
		s = draw.ApproxBiLinear
	}
	s.Scale(r.mapView, dst, r.mapImg, src, draw.Src, nil)
}

func (r *Renderer) drawMarker(screen *ebiten.Image, p *POI, rect Rect) {
	tint := r.cfg.MarkerTodo
	if p.Completed() {
		tint = r.cfg.MarkerDone
	}
	m := p.Marker
	if m.Kind == MarkerIcon && m.Outline != nil && m.Fill != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(rect.X, rect.Y)
		op.ColorScale.ScaleWithColor(tint)
		screen.DrawImage(m.Fill, op)
		op = &ebiten.DrawImageOptions{}
		op.GeoM.Translate(rect.X, rect.Y)
		screen.DrawImage(m.Outline, op)
		return
	}
	c := rect.Center()
	cx, cy := float32(c.X), float32(c.Y)
	rad := float32(m.Radius)
	vector.FillCircle(screen, cx, cy, rad, markerOutline, true)
	vector.FillCircle(screen, cx, cy, rad-2, tint, true)
}

// cardView holds the pre-rendered parts of one card.
type cardView struct {
	base *ebiten.Image // background, title, illustration
	text *ebiten.Image // full description block
}

func (r *Renderer) buildCard(c *InfoCard) *cardView {
	base := ebiten.NewImage(cardW, cardH)
	fillRoundRect(base, 0, 0, cardW, cardH, 30, cardBg)

	tw, th := text.Measure(c.POI.Name, r.faces.Title, 0)
	drawText(base, c.POI.Name, r.faces.Title, (cardW-tw)/2, cardTitleTop, cardText)

	var illus *ebiten.Image
	if img, ok := r.loader.Illustration(c.POI.Image, cardImageW, cardImageH); ok {
		illus = ebiten.NewImageFromImage(img)
	} else {
		illus = ebiten.NewImage(cardImageW, cardImageH)
		illus.Fill(cardImageBg)
		label := r.tr.Get("Image of %s", c.POI.Name)
		lw, lh := text.Measure(label, r.faces.Body, 0)
		drawText(illus, label, r.faces.Body, (cardImageW-lw)/2, (cardImageH-lh)/2, cardText)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate((cardW-cardImageW)/2, cardTitleTop+th+cardImageGap)
	base.DrawImage(illus, op)

	lines := c.Lines()
	lh := c.LineHeight()
	block := ebiten.NewImage(cardTextW, max(1, int(math.Ceil(float64(len(lines))*lh))))
	for i, line := range lines {
		drawText(block, line, r.faces.Body, 0, float64(i)*lh, cardText)
	}
	c.SetTextHeight(float64(block.Bounds().Dy()))
	return &cardView{base: base, text: block}
}

func (r *Renderer) drawCard(screen *ebiten.Image, c *InfoCard, now time.Time) {
	if c != r.lastCard || r.card == nil {
		if r.card != nil {
			r.card.base.Deallocate()
			r.card.text.Deallocate()
		}
		r.card = r.buildCard(c)
		r.lastCard = c
	}
	if r.cardBuf == nil {
		r.cardBuf = ebiten.NewImage(cardW, cardH)
	}
	buf := r.cardBuf
	buf.Clear()
	buf.DrawImage(r.card.base, nil)

	viewport := buf.SubImage(image.Rect(cardTextX, cardTextY, cardTextX+cardTextW, cardTextY+cardTextH)).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(cardTextX, cardTextY-c.ScrollY())
	viewport.DrawImage(r.card.text, op)

	btn := cardButtonRect()
	btnColor := r.cfg.MarkerTodo
	if c.Hovered() {
		btnColor = r.cfg.MarkerDone
	}
	fillRoundRect(buf, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), 25, btnColor)
	label := r.tr.Get("Completed")
	lw, lh := text.Measure(label, r.faces.Body, 0)
	drawText(buf, label, r.faces.Body, btn.X+(btn.W-lw)/2, btn.Y+(btn.H-lh)/2, cardButtonFg)

	scale, alpha := c.Transform(now)
	center := c.Rect().Center()
	op = &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-cardW/2, -cardH/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(center.X, center.Y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(buf, op)
}

func drawText(dst *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

func fillRoundRect(dst *ebiten.Image, x, y, w, h, radius float32, clr color.Color) {
	var path vector.Path
	path.MoveTo(x+radius, y)
	path.LineTo(x+w-radius, y)
	path.ArcTo(x+w, y, x+w, y+radius, radius)
	path.LineTo(x+w, y+h-radius)
	path.ArcTo(x+w, y+h, x+w-radius, y+h, radius)
	path.LineTo(x+radius, y+h)
	path.ArcTo(x, y+h, x, y+h-radius, radius)
	path.LineTo(x, y+radius)
	path.ArcTo(x, y, x+radius, y, radius)
	path.Close()

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(clr)
	vector.FillPath(dst, &path, &vector.FillOptions{}, op)
}
