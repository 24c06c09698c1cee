package assets

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Asset file names inside the assets directory.
const (
	MapFile        = "mapa_curitiba.png"
	FogFile        = "fog.png"
	WindowIconFile = "icone-araucaria.png"
	TitleFontFile  = "Rubik-Black.ttf"
	BodyFontFile   = "Rubik-Regular.ttf"
)

// Size of the substitute map used when the raster is missing.
const (
	FallbackMapWidth  = 16761
	FallbackMapHeight = 16910
)

// Solid is a uniformly coloured image with finite bounds. It stands in for
// rasters that failed to load without allocating their full size.
type Solid struct {
	Rect  image.Rectangle
	Color color.RGBA
}

func (s *Solid) ColorModel() color.Model { return color.RGBAModel }
func (s *Solid) Bounds() image.Rectangle { return s.Rect }

func (s *Solid) At(x, y int) color.Color {
	if !image.Pt(x, y).In(s.Rect) {
		return color.RGBA{}
	}
	return s.Color
}

// Loader reads assets from a directory and substitutes fallbacks for anything
// missing or corrupt. Its methods never fail; problems are logged.
type Loader struct {
	dir string
	log logrus.FieldLogger
}

// NewLoader returns a loader rooted at dir.
func NewLoader(dir string, log logrus.FieldLogger) *Loader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loader{dir: dir, log: log}
}

// Path joins name onto the assets directory.
func (l *Loader) Path(name string) string {
	return filepath.Join(l.dir, name)
}

// DecodeFile decodes a png, jpeg or webp file.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoAsset)
		}
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// Resize scales src to exactly w×h.
func Resize(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// Map loads the base map raster, or a grey stand-in of the stock size.
func (l *Loader) Map() image.Image {
	path := l.Path(MapFile)
	img, err := DecodeFile(path)
	if err != nil {
		l.log.WithError(err).WithField("asset", "map").Warn("using solid fallback map")
		return &Solid{
			Rect:  image.Rect(0, 0, FallbackMapWidth, FallbackMapHeight),
			Color: color.RGBA{R: 100, G: 100, B: 100, A: 255},
		}
	}
	return img
}

// Fog loads the precomputed fog raster. ok is false when the caller should
// fall back to a uniform fog.
//
// Only the raster's alpha channel is used: it seeds the fog mask, and the
// fog is always painted in the configured fog colour, so any colour or
// texture in the file is ignored.
func (l *Loader) Fog() (img image.Image, ok bool) {
	img, err := DecodeFile(l.Path(FogFile))
	if err != nil {
		l.log.WithError(err).WithField("asset", "fog").Warn("using uniform fallback fog")
		return nil, false
	}
	return img, true
}

// Icon loads a POI's outline and fill layers scaled to side×side. ok is
// false when either layer is unavailable, in which case the POI gets a
// circle marker.
func (l *Loader) Icon(id string, side int) (outline, fill image.Image, ok bool) {
	o, err := DecodeFile(l.Path(id + "_outline.png"))
	if err != nil {
		l.log.WithError(err).WithField("poi", id).Debug("no icon, using circle marker")
		return nil, nil, false
	}
	f, err := DecodeFile(l.Path(id + "_fill.png"))
	if err != nil {
		l.log.WithError(err).WithField("poi", id).Warn("icon fill layer missing, using circle marker")
		return nil, nil, false
	}
	return Resize(o, side, side), Resize(f, side, side), true
}

// Illustration loads an optional card image scaled to w×h. An empty path is
// not an error, it simply has no illustration.
func (l *Loader) Illustration(rel string, w, h int) (image.Image, bool) {
	if rel == "" {
		return nil, false
	}
	img, err := DecodeFile(l.Path(rel))
	if err != nil {
		l.log.WithError(err).WithField("asset", rel).Warn("illustration unavailable")
		return nil, false
	}
	return Resize(img, w, h), true
}

// WindowIcon loads the window icon, if present.
func (l *Loader) WindowIcon() (image.Image, bool) {
	img, err := DecodeFile(l.Path(WindowIconFile))
	if err != nil {
		l.log.WithError(err).WithField("asset", "icon").Info("no window icon")
		return nil, false
	}
	return img, true
}
