package main

import (
	"context"
	"fmt"
	"log"

	"github.com/milk9111/sensconv/config"
	"github.com/milk9111/sensconv/engines"
)

// watch converts once, then again every time the config file or the
// engine catalog changes, until ctx is done. A config edit that points
// engines at another file moves the watch to that file.
func (a *app) watch(ctx context.Context, configPath string, flags config.Flags) error {
	cfg, err := loadConfig(configPath, flags)
	if err != nil {
		return err
	}

	paths := watchPaths(configPath, cfg)
	if len(paths) == 0 {
		return fmt.Errorf("watch: nothing to watch, pass -config or -engines")
	}

	w, err := engines.NewWatcher(paths...)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer func() { w.Close() }()
	watching := cfg.Engines

	if _, err := a.run(cfg); err != nil {
		log.Printf("convert: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			if a.verbose {
				log.Printf("watch: %s changed", name)
			}
			cfg, err := loadConfig(configPath, flags)
			if err != nil {
				log.Printf("reload: %v", err)
				continue
			}
			if cfg.Engines != watching {
				next, err := engines.NewWatcher(watchPaths(configPath, cfg)...)
				if err != nil {
					log.Printf("watch: %v", err)
				} else {
					w.Close()
					w = next
					watching = cfg.Engines
					if a.verbose {
						log.Printf("watch: now watching engines %q", watching)
					}
				}
			}
			fmt.Fprintln(a.out, "------------------------------------------------------------")
			if _, err := a.run(cfg); err != nil {
				log.Printf("convert: %v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		}
	}
}

func watchPaths(configPath string, cfg config.Config) []string {
	var paths []string
	if configPath != "" {
		paths = append(paths, configPath)
	}
	if cfg.Engines != "" {
		paths = append(paths, cfg.Engines)
	}
	return paths
}
