package main

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/milk9111/sensconv/config"
	"github.com/milk9111/sensconv/engines"
	"github.com/milk9111/sensconv/report"
	"github.com/milk9111/sensconv/sensitivity"
)

type app struct {
	out     io.Writer
	verbose bool
	copy    func(text string) error
}

// loadConfig reads the optional config file and applies flags over it.
func loadConfig(path string, flags config.Flags) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
	}
	cfg.Resolve(flags)
	return cfg, nil
}

func (a *app) loadCatalog(path string) (*engines.Catalog, sensitivity.Table, error) {
	cat, table, err := engines.Open(path)
	if err != nil {
		return nil, sensitivity.Table{}, err
	}
	if a.verbose {
		log.Printf("engines: %d engines, %d games", table.Len(), len(cat.Games))
	}
	return cat, table, nil
}

func (a *app) buildProfiles(cfg config.Config) (src, dst *sensitivity.Profile, err error) {
	cat, table, err := a.loadCatalog(cfg.Engines)
	if err != nil {
		return nil, nil, err
	}

	src, err = a.buildProfile("source", cfg.Source, table, cat)
	if err != nil {
		return nil, nil, err
	}
	dst, err = a.buildProfile("target", cfg.Target, table, cat)
	if err != nil {
		return nil, nil, err
	}
	return src, dst, nil
}

func (a *app) buildProfile(side string, spec config.ProfileSpec, table sensitivity.Table, cat *engines.Catalog) (*sensitivity.Profile, error) {
	p, err := spec.Build(table, cat)
	if errors.Is(err, sensitivity.ErrUnrecognizedEngine) {
		log.Printf("warning: %s %s: %v", side, spec.Game, err)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", side, err)
	}
	if a.verbose {
		log.Printf("%s: %q -> engine %s, yaw %g", side, spec.Game, p.Engine(), p.Yaw())
	}
	return p, nil
}

// run converts once and prints the report.
func (a *app) run(cfg config.Config) (sensitivity.Result, error) {
	if err := cfg.Validate(); err != nil {
		return sensitivity.Result{}, err
	}

	src, dst, err := a.buildProfiles(cfg)
	if err != nil {
		return sensitivity.Result{}, err
	}

	res, err := sensitivity.Convert(src, dst)
	if err != nil {
		return sensitivity.Result{}, err
	}
	if err := report.Conversion(a.out, res); err != nil {
		return sensitivity.Result{}, err
	}

	if cfg.Copy && a.copy != nil {
		if err := a.copy(report.Suggested(res)); err != nil {
			log.Printf("warning: copy to clipboard: %v", err)
		} else if a.verbose {
			log.Printf("copied %s to clipboard", report.Suggested(res))
		}
	}
	return res, nil
}

// calibrate derives the yaw of an unknown target engine from a target
// sensitivity known to feel like the source.
func (a *app) calibrate(cfg config.Config, knownSens float64) error {
	if cfg.Source.Game == "" {
		return errors.New("calibrate: source game is required")
	}
	cat, table, err := a.loadCatalog(cfg.Engines)
	if err != nil {
		return err
	}
	ref, err := a.buildProfile("source", cfg.Source, table, cat)
	if err != nil {
		return err
	}

	yaw, err := sensitivity.DeriveYaw(ref, cfg.Target.DPI, cfg.Target.Pointer, knownSens)
	if err != nil {
		return err
	}
	return report.Calibration(a.out, ref, cfg.Target.DPI, cfg.Target.Pointer, knownSens, yaw)
}

func (a *app) listEngines(path string) error {
	cat, table, err := a.loadCatalog(path)
	if err != nil {
		return err
	}

	var rows []report.EngineRow
	for _, id := range table.Engines() {
		yaw, _ := table.Lookup(id)
		row := report.EngineRow{ID: id, Yaw: yaw, Games: cat.GamesFor(id)}
		if spec, ok := cat.Engine(id); ok {
			row.Notes = spec.Notes
		}
		rows = append(rows, row)
	}
	return report.Engines(a.out, rows)
}
