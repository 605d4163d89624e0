package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/milk9111/sensconv/config"
)

func main() {
	configFile := flag.String("config", "", "path to a YAML conversion file")
	enginesFile := flag.String("engines", "", "path to a YAML engine catalog merged over the built-in one")
	from := flag.String("from", "", "source game or engine (e.g. cs2, source)")
	to := flag.String("to", "", "target game or engine (e.g. hunt, cryengine)")
	dpi := flag.Float64("dpi", 0, "source mouse DPI (default 800)")
	sens := flag.Float64("sens", 0, "source in-game sensitivity (default 1)")
	pointer := flag.Float64("pointer", 0, "source OS pointer multiplier (default 1)")
	toDPI := flag.Float64("to-dpi", 0, "target mouse DPI (default: same as source)")
	toSens := flag.Float64("to-sens", 0, "current target sensitivity, shown for comparison")
	toPointer := flag.Float64("to-pointer", 0, "target OS pointer multiplier (default: same as source)")
	copyResult := flag.Bool("copy", false, "copy the suggested sensitivity to the clipboard")
	watch := flag.Bool("watch", false, "re-run the conversion whenever the config or engine files change")
	list := flag.Bool("list", false, "list known engines and games, then exit")
	calibrate := flag.Float64("calibrate", 0, "derive the target engine's yaw from a known matching target sensitivity")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("sensconv: ")

	a := &app{out: os.Stdout, verbose: *verbose, copy: writeClipboard}

	if *list {
		if err := a.listEngines(*enginesFile); err != nil {
			log.Fatal(err)
		}
		return
	}

	flags := config.Flags{
		Engines:   *enginesFile,
		From:      *from,
		To:        *to,
		DPI:       *dpi,
		Sens:      *sens,
		Pointer:   *pointer,
		ToDPI:     *toDPI,
		ToSens:    *toSens,
		ToPointer: *toPointer,
		Copy:      *copyResult,
		Watch:     *watch,
	}

	cfg, err := loadConfig(*configFile, flags)
	if err != nil {
		log.Fatal(err)
	}

	if *calibrate > 0 {
		if err := a.calibrate(cfg, *calibrate); err != nil {
			log.Fatal(err)
		}
		return
	}

	if !cfg.Watch {
		if _, err := a.run(cfg); err != nil {
			log.Fatal(err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := a.watch(ctx, *configFile, flags); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
