package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sensconv/config"
	"github.com/milk9111/sensconv/engines"
	"github.com/milk9111/sensconv/sensitivity"
)

func main() {
	configFile := flag.String("config", "", "path to a YAML conversion file")
	enginesFile := flag.String("engines", "", "path to a YAML engine catalog merged over the built-in one")
	from := flag.String("from", "", "source game or engine")
	to := flag.String("to", "", "target game or engine")
	dpi := flag.Float64("dpi", 0, "mouse DPI (default 800)")
	sens := flag.Float64("sens", 0, "source in-game sensitivity")
	toSens := flag.Float64("to-sens", 0, "current target sensitivity")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("sensview: ")

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatal(err)
		}
	}
	cfg.Resolve(config.Flags{Engines: *enginesFile, From: *from, To: *to, DPI: *dpi, Sens: *sens, ToSens: *toSens})
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	cat, table, err := engines.Open(cfg.Engines)
	if err != nil {
		log.Fatal(err)
	}
	source := mustBuild(cfg.Source, table, cat)
	target := mustBuild(cfg.Target, table, cat)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("sensview")
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(NewViewer(source, target)); err != nil {
		log.Fatal(err)
	}
}

func mustBuild(spec config.ProfileSpec, table sensitivity.Table, cat *engines.Catalog) *sensitivity.Profile {
	p, err := spec.Build(table, cat)
	if errors.Is(err, sensitivity.ErrUnrecognizedEngine) {
		log.Printf("warning: %s: %v", spec.Game, err)
		return p
	}
	if err != nil {
		log.Fatal(err)
	}
	return p
}
