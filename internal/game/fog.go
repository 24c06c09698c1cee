package game

import (
	"image"
	"image/color"
	"math"
)

// fogTileSize is the edge length of one fog storage tile in map pixels.
const fogTileSize = 256

type fogTile [fogTileSize * fogTileSize]uint8

// FogMask is a per-pixel alpha buffer covering the whole map.
//
// Storage is sparse: the map is split into square tiles and a nil tile means
// "every pixel still holds the base alpha". A tile is only allocated the first
// time a reveal lowers one of its pixels, so a 16k×16k map costs memory only
// where the player has explored. Alpha values only ever go down.
type FogMask struct {
	w, h       int
	cols, rows int
	base       uint8
	tiles      []*fogTile
	version    uint64
}

// NewFogMask returns a w×h mask where every pixel has the given alpha.
func NewFogMask(w, h int, alpha uint8) *FogMask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	cols := (w + fogTileSize - 1) / fogTileSize
	rows := (h + fogTileSize - 1) / fogTileSize
	return &FogMask{
		w:     w,
		h:     h,
		cols:  cols,
		rows:  rows,
		base:  alpha,
		tiles: make([]*fogTile, cols*rows),
	}
}

// NewFogMaskFromImage builds a mask from the alpha channel of a fog raster.
// Pixels outside img read as base. Tiles that come out uniform at base stay
// unallocated.
func NewFogMaskFromImage(w, h int, img image.Image, base uint8) *FogMask {
	f := NewFogMask(w, h, base)
	b := img.Bounds()
	alphaAt := alphaReader(img)
	for ty := 0; ty < f.rows; ty++ {
		for tx := 0; tx < f.cols; tx++ {
			var t fogTile
			uniform := true
			for py := 0; py < fogTileSize; py++ {
				y := ty*fogTileSize + py
				for px := 0; px < fogTileSize; px++ {
					x := tx*fogTileSize + px
					a := base
					if x < f.w && y < f.h && image.Pt(b.Min.X+x, b.Min.Y+y).In(b) {
						a = alphaAt(b.Min.X+x, b.Min.Y+y)
					}
					t[py*fogTileSize+px] = a
					if a != base {
						uniform = false
					}
				}
			}
			if !uniform {
				tile := t
				f.tiles[ty*f.cols+tx] = &tile
			}
		}
	}
	return f
}

// alphaReader returns a fast alpha accessor for the common decoded formats.
func alphaReader(img image.Image) func(x, y int) uint8 {
	switch m := img.(type) {
	case *image.NRGBA:
		return func(x, y int) uint8 { return m.Pix[m.PixOffset(x, y)+3] }
	case *image.RGBA:
		return func(x, y int) uint8 { return m.Pix[m.PixOffset(x, y)+3] }
	case *image.Alpha:
		return func(x, y int) uint8 { return m.Pix[m.PixOffset(x, y)] }
	default:
		return func(x, y int) uint8 {
			_, _, _, a := img.At(x, y).RGBA()
			return uint8(a >> 8)
		}
	}
}

// Size returns the mask dimensions.
func (f *FogMask) Size() (int, int) { return f.w, f.h }

// Version increases every time a punch changes at least one pixel.
func (f *FogMask) Version() uint64 { return f.version }

// AllocatedTiles reports how many storage tiles hold their own pixels.
// Fully revealed tiles share one buffer and are not counted.
func (f *FogMask) AllocatedTiles() int {
	n := 0
	for _, t := range f.tiles {
		if t != nil && t != clearedTile {
			n++
		}
	}
	return n
}

// AlphaAt returns the fog opacity at a map pixel. Outside the map there is no fog.
func (f *FogMask) AlphaAt(x, y int) uint8 {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return 0
	}
	t := f.tiles[(y/fogTileSize)*f.cols+x/fogTileSize]
	if t == nil {
		return f.base
	}
	return t[(y%fogTileSize)*fogTileSize+x%fogTileSize]
}

// materialise allocates tile idx filled with the base alpha.
func (f *FogMask) materialise(idx int) *fogTile {
	t := new(fogTile)
	for i := range t {
		t[i] = f.base
	}
	f.tiles[idx] = t
	return t
}

// lower sets the pixel to a if that is below its current alpha.
func (f *FogMask) lower(x, y int, a uint8) bool {
	idx := (y/fogTileSize)*f.cols + x/fogTileSize
	t := f.tiles[idx]
	if t == nil {
		if a >= f.base {
			return false
		}
		t = f.materialise(idx)
	}
	off := (y%fogTileSize)*fogTileSize + x%fogTileSize
	if a >= t[off] {
		return false
	}
	t[off] = a
	return true
}

// clearedTile is shared by every tile that has been fully revealed. Its
// pixels are all zero, so lower never writes to it.
var clearedTile = new(fogTile)

// Punch clears the disc of the given radius around center. Pixels whose centre
// is within radius become fully transparent; the one-pixel rim outside it is
// faded proportionally for a soft edge. Punch never raises any pixel.
//
// Tiles wholly inside the disc are swapped for clearedTile without touching
// their pixels; only tiles crossed by the rim are walked row by row.
func (f *FogMask) Punch(center Point, radius float64) {
	if radius <= 0 || f.w == 0 || f.h == 0 {
		return
	}
	outer := radius + 1
	tx0 := max(0, int(math.Floor(center.X-outer))/fogTileSize)
	tx1 := min(f.cols-1, int(math.Ceil(center.X+outer))/fogTileSize)
	ty0 := max(0, int(math.Floor(center.Y-outer))/fogTileSize)
	ty1 := min(f.rows-1, int(math.Ceil(center.Y+outer))/fogTileSize)
	changed := false
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			r := image.Rect(tx*fogTileSize, ty*fogTileSize, (tx+1)*fogTileSize, (ty+1)*fogTileSize).
				Intersect(image.Rect(0, 0, f.w, f.h))
			near, far := pixelDistRange(r, center)
			switch {
			case near >= outer:
			case far <= radius:
				idx := ty*f.cols + tx
				if t := f.tiles[idx]; t != clearedTile && (t != nil || f.base > 0) {
					if t == nil || !t.clear() {
						changed = true
					}
					f.tiles[idx] = clearedTile
				}
			default:
				if f.punchRect(r, center, radius) {
					changed = true
				}
			}
		}
	}
	if changed {
		f.version++
	}
}

func (t *fogTile) clear() bool {
	for _, a := range t {
		if a != 0 {
			return false
		}
	}
	return true
}

// pixelDistRange returns the nearest and farthest distance from c to the
// centres of the pixels in r.
func pixelDistRange(r image.Rectangle, c Point) (near, far float64) {
	minX, maxX := float64(r.Min.X)+0.5, float64(r.Max.X)-0.5
	minY, maxY := float64(r.Min.Y)+0.5, float64(r.Max.Y)-0.5
	nx := math.Max(minX, math.Min(c.X, maxX))
	ny := math.Max(minY, math.Min(c.Y, maxY))
	fx := math.Max(math.Abs(c.X-minX), math.Abs(c.X-maxX))
	fy := math.Max(math.Abs(c.Y-minY), math.Abs(c.Y-maxY))
	return math.Hypot(c.X-nx, c.Y-ny), math.Hypot(fx, fy)
}

// punchRect applies the disc to the pixels of r, which lies within one tile.
// Each row's span that is certainly inside the radius is zeroed in bulk; the
// pixels either side of it get the per-pixel rim test.
func (f *FogMask) punchRect(r image.Rectangle, center Point, radius float64) bool {
	outer := radius + 1
	changed := false
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dy := float64(y) + 0.5 - center.Y
		if math.Abs(dy) >= outer {
			continue
		}
		half := math.Sqrt(outer*outer - dy*dy)
		x0 := max(r.Min.X, int(math.Floor(center.X-0.5-half)))
		x1 := min(r.Max.X-1, int(math.Ceil(center.X-0.5+half)))

		i0, i1 := x1+1, x1
		if math.Abs(dy) < radius {
			in := math.Sqrt(radius*radius - dy*dy)
			i0 = max(x0, int(math.Ceil(center.X-0.5-in)))
			i1 = min(x1, int(math.Floor(center.X-0.5+in)))
		}
		if i0 > i1 {
			i0, i1 = x1+1, x1
		} else if f.clearSpan(y, i0, i1) {
			changed = true
		}

		for x := x0; x < i0; x++ {
			if f.rimPixel(x, y, dy, center, radius) {
				changed = true
			}
		}
		for x := i1 + 1; x <= x1; x++ {
			if f.rimPixel(x, y, dy, center, radius) {
				changed = true
			}
		}
	}
	return changed
}

// rimPixel applies the disc to one pixel near its edge.
func (f *FogMask) rimPixel(x, y int, dy float64, center Point, radius float64) bool {
	d := math.Hypot(float64(x)+0.5-center.X, dy)
	switch {
	case d <= radius:
		return f.lower(x, y, 0)
	case d < radius+1:
		cur := f.AlphaAt(x, y)
		return f.lower(x, y, uint8(float64(cur)*(d-radius)))
	}
	return false
}

// clearSpan zeroes pixels x0..x1 of row y. The span must lie within one tile.
func (f *FogMask) clearSpan(y, x0, x1 int) bool {
	idx := (y/fogTileSize)*f.cols + x0/fogTileSize
	t := f.tiles[idx]
	if t == clearedTile || (t == nil && f.base == 0) {
		return false
	}
	if t == nil {
		t = f.materialise(idx)
	}
	row := (y % fogTileSize) * fogTileSize
	seg := t[row+x0%fogTileSize : row+x1%fogTileSize+1]
	changed := false
	for _, a := range seg {
		if a != 0 {
			changed = true
			break
		}
	}
	clear(seg)
	return changed
}

// Sample renders the map-space rectangle src into dr of dst using nearest
// neighbour lookup, writing tint premultiplied by each pixel's alpha.
func (f *FogMask) Sample(dst *image.RGBA, dr image.Rectangle, src Rect, tint color.RGBA) {
	dr = dr.Intersect(dst.Bounds())
	if dr.Empty() || src.Empty() {
		return
	}
	sx := src.W / float64(dr.Dx())
	sy := src.H / float64(dr.Dy())
	for py := dr.Min.Y; py < dr.Max.Y; py++ {
		my := int(math.Floor(src.Y + (float64(py-dr.Min.Y)+0.5)*sy))
		row := dst.PixOffset(dr.Min.X, py)
		for px := dr.Min.X; px < dr.Max.X; px++ {
			mx := int(math.Floor(src.X + (float64(px-dr.Min.X)+0.5)*sx))
			a := uint32(f.AlphaAt(mx, my)) * uint32(tint.A) / 255
			i := row + (px-dr.Min.X)*4
			dst.Pix[i+0] = uint8(uint32(tint.R) * a / 255)
			dst.Pix[i+1] = uint8(uint32(tint.G) * a / 255)
			dst.Pix[i+2] = uint8(uint32(tint.B) * a / 255)
			dst.Pix[i+3] = uint8(a)
		}
	}
}
