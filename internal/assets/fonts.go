package assets

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Faces are the two typefaces used by the info card.
type Faces struct {
	Title text.Face
	Body  text.Face
}

func faceSourceFromFile(path string) (*text.GoTextFaceSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return src, nil
}

// Faces loads the card fonts, falling back to the embedded Go fonts.
func (l *Loader) Faces(titleSize, bodySize float64) Faces {
	title := l.faceSource(TitleFontFile, gobold.TTF)
	body := l.faceSource(BodyFontFile, goregular.TTF)
	return Faces{
		Title: &text.GoTextFace{Source: title, Size: titleSize},
		Body:  &text.GoTextFace{Source: body, Size: bodySize},
	}
}

func (l *Loader) faceSource(name string, fallback []byte) *text.GoTextFaceSource {
	src, err := faceSourceFromFile(l.Path(name))
	if err == nil {
		return src
	}
	l.log.WithError(err).WithField("asset", name).Warn("using embedded Go font")
	src, err = text.NewGoTextFaceSource(bytes.NewReader(fallback))
	if err != nil {
		// The embedded fonts are part of the binary; failing here means a broken build.
		panic(fmt.Sprintf("loading embedded font: %v", err))
	}
	return src
}
