package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/city-explorer/internal/assets"
	"github.com/Garsondee/city-explorer/internal/game"
)

func main() {
	cfg := game.DefaultConfig()
	var assetsDir, dataset, lang, level string
	var seed int64

	flag.StringVar(&assetsDir, "assets", "assets", "directory holding the map, fog, icons and fonts")
	flag.StringVar(&dataset, "dataset", "", "POI dataset YAML (default: embedded Curitiba tour)")
	flag.StringVar(&lang, "lang", assets.DefaultLanguage, "UI language")
	flag.IntVar(&cfg.ScreenWidth, "width", cfg.ScreenWidth, "initial window width")
	flag.IntVar(&cfg.ScreenHeight, "height", cfg.ScreenHeight, "initial window height")
	flag.StringVar(&level, "log-level", "info", "log level (debug, info, warn, error)")
	flag.Int64Var(&seed, "seed", 0, "marker jitter seed (0 = clock)")
	flag.Parse()

	logger := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.WithError(err).Fatal("invalid -log-level")
	}
	logger.SetLevel(lvl)

	g := game.New(game.Options{
		Config:      cfg,
		AssetsDir:   assetsDir,
		DatasetPath: dataset,
		Lang:        lang,
		Seed:        seed,
		Logger:      logger,
	})

	ebiten.SetWindowTitle(g.Title())
	if icons := g.WindowIcons(); len(icons) > 0 {
		ebiten.SetWindowIcon(icons)
	}
	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		logger.WithError(err).Fatal("game exited")
	}
}
