package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/Garsondee/city-explorer/internal/assets"
	"github.com/Garsondee/city-explorer/internal/game"
)

// step is one completion in the unlock chain.
type step struct {
	index    int
	poi      *game.POI
	radius   float64
	next     string
	revealed []string
}

func main() {
	var dataset string
	var mapW, mapH, wrap int
	var verbose bool

	flag.StringVar(&dataset, "dataset", "", "POI dataset YAML (default: embedded Curitiba tour)")
	flag.IntVar(&mapW, "map-width", assets.FallbackMapWidth, "map width in pixels")
	flag.IntVar(&mapH, "map-height", assets.FallbackMapHeight, "map height in pixels")
	flag.IntVar(&wrap, "wrap", 78, "description wrap width in columns (0 hides descriptions)")
	flag.BoolVar(&verbose, "v", false, "dump the full tour log")
	flag.Parse()

	if mapW <= 0 || mapH <= 0 {
		fmt.Println("error: -map-width and -map-height must be > 0")
		os.Exit(2)
	}

	records, err := assets.LoadDataset(dataset)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	if err := assets.CheckBounds(records, mapW, mapH); err != nil {
		fmt.Printf("warning: %v\n", err)
	}

	tt, err := game.NewTestTour(
		game.WithMapSize(mapW, mapH),
		game.WithDataset(records),
	)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	name := dataset
	if name == "" {
		name = "embedded"
	}
	fmt.Printf("=== Tour Report ===\n")
	fmt.Printf("dataset=%s pois=%d map=%dx%d\n\n", name, len(records), mapW, mapH)

	order := tt.Run()
	for _, s := range buildSteps(tt.Log, order) {
		fmt.Print(formatStep(s, wrap))
	}

	fmt.Println()
	fmt.Print(tt.Log.Summary(tt.Elapsed(), tt.Explorer.POIs()))
	if len(order) < len(records) {
		fmt.Printf("stalled after %d of %d POIs\n", len(order), len(records))
	}
	if verbose {
		fmt.Println()
		fmt.Print(tt.Log.Format())
	}
}

// buildSteps reads the completion chain back out of the tour log.
func buildSteps(log *game.TourLog, order []*game.POI) []step {
	steps := make([]step, 0, len(order))
	for i, p := range order {
		s := step{index: i + 1, poi: p, next: "--", revealed: log.Unlocked(p.ID)}
		if radius, next, ok := log.RevealFrom(p.ID); ok {
			s.radius, s.next = radius, next
		}
		steps = append(steps, s)
	}
	return steps
}

func formatStep(s step, wrap int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%2d. %-28s (%5.0f,%5.0f)  r=%7.1f  next=%s\n",
		s.index, s.poi.Name, s.poi.Pos.X, s.poi.Pos.Y, s.radius, s.next)
	if len(s.revealed) > 0 {
		fmt.Fprintf(&sb, "    unlocked: %s\n", strings.Join(s.revealed, ", "))
	}
	if wrap > 0 && s.poi.Description != "" {
		for _, line := range strings.Split(wordwrap.String(s.poi.Description, wrap-4), "\n") {
			fmt.Fprintf(&sb, "    %s\n", line)
		}
	}
	return sb.String()
}
