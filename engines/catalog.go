package engines

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/milk9111/sensconv/sensitivity"
	"gopkg.in/yaml.v3"
)

// Catalog lists engine coefficients and the games that use them.
type Catalog struct {
	Engines []EngineSpec `yaml:"engines"`
	Games   []GameSpec   `yaml:"games"`
}

// EngineSpec describes one engine. Yaw and Script are mutually exclusive;
// an engine with neither is listed but unsupported.
type EngineSpec struct {
	ID     string  `yaml:"id"`
	Yaw    float64 `yaml:"yaw"`
	Script string  `yaml:"script"`
	Notes  string  `yaml:"notes"`

	// directory Script is resolved against; empty means embedded
	dir string
}

type GameSpec struct {
	Name    string   `yaml:"name"`
	Engine  string   `yaml:"engine"`
	Aliases []string `yaml:"aliases"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("engines: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("engines: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadCatalog returns the built-in catalog.
func LoadCatalog() (*Catalog, error) {
	cat, err := LoadSpec[Catalog](DefaultCatalogFile)
	if err != nil {
		return nil, err
	}
	if err := cat.validate(DefaultCatalogFile); err != nil {
		return nil, err
	}
	return &cat, nil
}

// LoadCatalogFile reads a user catalog from disk. Scripts it names are
// resolved relative to the file.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("engines: load %s: %w", path, err)
	}
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("engines: unmarshal %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i := range cat.Engines {
		cat.Engines[i].dir = dir
	}
	if err := cat.validate(path); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Catalog) validate(source string) error {
	for i := range c.Engines {
		e := &c.Engines[i]
		e.ID = sensitivity.NormalizeEngine(e.ID)
		if e.ID == "" {
			return fmt.Errorf("engines: %s: engine %d has no id", source, i)
		}
		if e.Yaw < 0 || math.IsNaN(e.Yaw) || math.IsInf(e.Yaw, 0) {
			return fmt.Errorf("engines: %s: engine %s: yaw %g must be zero or greater", source, e.ID, e.Yaw)
		}
		if e.Yaw != 0 && e.Script != "" {
			return fmt.Errorf("engines: %s: engine %s: set yaw or script, not both", source, e.ID)
		}
	}
	for i := range c.Games {
		g := &c.Games[i]
		if g.Name == "" {
			return fmt.Errorf("engines: %s: game %d has no name", source, i)
		}
		g.Engine = sensitivity.NormalizeEngine(g.Engine)
		if g.Engine == "" {
			return fmt.Errorf("engines: %s: game %s has no engine", source, g.Name)
		}
	}
	return nil
}

// Merge returns a catalog holding c's entries overridden by other's.
// Entries are matched by engine id and by normalized game name.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	out := &Catalog{}
	engineAt := map[string]int{}
	gameAt := map[string]int{}

	for _, src := range []*Catalog{c, other} {
		if src == nil {
			continue
		}
		for _, e := range src.Engines {
			if i, ok := engineAt[e.ID]; ok {
				out.Engines[i] = e
				continue
			}
			engineAt[e.ID] = len(out.Engines)
			out.Engines = append(out.Engines, e)
		}
		for _, g := range src.Games {
			key := sensitivity.NormalizeEngine(g.Name)
			if i, ok := gameAt[key]; ok {
				out.Games[i] = g
				continue
			}
			gameAt[key] = len(out.Games)
			out.Games = append(out.Games, g)
		}
	}
	return out
}

// Table evaluates every engine, scripts included, on top of the built-in
// table. Scripts can read coefficients of engines listed before them.
func (c *Catalog) Table() (sensitivity.Table, error) {
	t := sensitivity.DefaultTable()
	for _, e := range c.Engines {
		yaw := e.Yaw
		if e.Script != "" {
			src, err := e.loadScript()
			if err != nil {
				return sensitivity.Table{}, fmt.Errorf("engines: engine %s: %w", e.ID, err)
			}
			yaw, err = EvalYaw(e.Script, src, t)
			if err != nil {
				return sensitivity.Table{}, fmt.Errorf("engines: engine %s: %w", e.ID, err)
			}
		}
		t = t.With(e.ID, yaw)
	}
	return t, nil
}

func (e EngineSpec) loadScript() ([]byte, error) {
	if e.dir == "" {
		return LoadScript(e.Script)
	}
	path := e.Script
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.dir, path)
	}
	return os.ReadFile(path)
}

// Resolve maps a game name, alias or engine id to an engine id. The
// returned game name is empty when label named an engine directly.
func (c *Catalog) Resolve(label string) (engine, game string) {
	key := sensitivity.NormalizeEngine(label)
	for _, e := range c.Engines {
		if e.ID == key {
			return key, ""
		}
	}
	for _, g := range c.Games {
		if sensitivity.NormalizeEngine(g.Name) == key {
			return g.Engine, g.Name
		}
		for _, alias := range g.Aliases {
			if sensitivity.NormalizeEngine(alias) == key {
				return g.Engine, g.Name
			}
		}
	}
	return key, ""
}

// GamesFor lists game names using engine id, sorted.
func (c *Catalog) GamesFor(id string) []string {
	var names []string
	for _, g := range c.Games {
		if g.Engine == id {
			names = append(names, g.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Engine returns the spec for id, if listed.
func (c *Catalog) Engine(id string) (EngineSpec, bool) {
	for _, e := range c.Engines {
		if e.ID == id {
			return e, true
		}
	}
	return EngineSpec{}, false
}

// Open loads the built-in catalog, merges the user file at path if one is
// given, and evaluates the result.
func Open(path string) (*Catalog, sensitivity.Table, error) {
	cat, err := LoadCatalog()
	if err != nil {
		return nil, sensitivity.Table{}, err
	}
	if path != "" {
		user, err := LoadCatalogFile(path)
		if err != nil {
			return nil, sensitivity.Table{}, err
		}
		cat = cat.Merge(user)
	}

	table, err := cat.Table()
	if err != nil {
		return nil, sensitivity.Table{}, err
	}
	return cat, table, nil
}
