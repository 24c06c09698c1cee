package game

import (
	"image/color"
	"time"
)

// Config holds the tunables of the explorer. DefaultConfig matches the
// behaviour of the shipped Curitiba map.
type Config struct {
	ScreenWidth  int
	ScreenHeight int

	RevealDuration  time.Duration
	RevealPadding   float64 // added to the distance to the next POI
	FallbackRadius  float64 // used when every POI is completed
	ShakeDuration   time.Duration
	ShakeAmplitude  float64 // max horizontal jitter in screen pixels
	CardSizeAnim    time.Duration
	CardFadeAnim    time.Duration
	ScrollPerNotch  float64
	MarkerRadius    float64 // fallback circle marker
	IconSize        float64
	BackgroundColor color.RGBA
	FogColor        color.RGBA // RGB tint and base alpha of the fallback fog
	MarkerTodo      color.RGBA
	MarkerDone      color.RGBA
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		ScreenWidth:     900,
		ScreenHeight:    720,
		RevealDuration:  399 * time.Millisecond,
		RevealPadding:   150,
		FallbackRadius:  800,
		ShakeDuration:   700 * time.Millisecond,
		ShakeAmplitude:  10,
		CardSizeAnim:    200 * time.Millisecond,
		CardFadeAnim:    70 * time.Millisecond,
		ScrollPerNotch:  20,
		MarkerRadius:    15,
		IconSize:        64,
		BackgroundColor: color.RGBA{R: 222, G: 220, B: 214, A: 255},
		FogColor:        color.RGBA{R: 222, G: 220, B: 214, A: 240},
		MarkerTodo:      color.RGBA{R: 255, G: 215, B: 0, A: 255},
		MarkerDone:      color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}
