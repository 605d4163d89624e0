package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/milk9111/sensconv/sensitivity"
	"gopkg.in/yaml.v3"
)

// Config holds one conversion: where to read engines from and the two
// profiles to compare.
type Config struct {
	Engines string      `yaml:"engines"`
	Source  ProfileSpec `yaml:"source"`
	Target  ProfileSpec `yaml:"target"`

	Copy  bool `yaml:"copy"`
	Watch bool `yaml:"watch"`
}

// ProfileSpec is the file form of a sensitivity.Profile. Game may be a
// game name, an alias or an engine id. Zero fields take defaults.
type ProfileSpec struct {
	Name            string  `yaml:"name"`
	Game            string  `yaml:"game"`
	DPI             float64 `yaml:"dpi"`
	Sens            float64 `yaml:"sens"`
	Pointer         float64 `yaml:"pointer"`
	FOV             float64 `yaml:"fov"`
	MouseAccel      float64 `yaml:"mouse_accel"`
	ResolutionWidth int     `yaml:"resolution_width"`
	FrameRate       int     `yaml:"frame_rate"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Engines   string
	From      string
	To        string
	DPI       float64
	Sens      float64
	Pointer   float64
	ToDPI     float64
	ToSens    float64
	ToPointer float64
	Copy      bool
	Watch     bool
}

// Load reads a YAML config file.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies flag overrides, then fills defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Engines != "" {
		c.Engines = flags.Engines
	}
	if flags.From != "" {
		c.Source.Game = flags.From
	}
	if flags.To != "" {
		c.Target.Game = flags.To
	}
	if flags.DPI > 0 {
		c.Source.DPI = flags.DPI
	}
	if flags.Sens > 0 {
		c.Source.Sens = flags.Sens
	}
	if flags.Pointer > 0 {
		c.Source.Pointer = flags.Pointer
	}
	if flags.ToDPI > 0 {
		c.Target.DPI = flags.ToDPI
	}
	if flags.ToSens > 0 {
		c.Target.Sens = flags.ToSens
	}
	if flags.ToPointer > 0 {
		c.Target.Pointer = flags.ToPointer
	}
	c.Copy = c.Copy || flags.Copy
	c.Watch = c.Watch || flags.Watch

	// Defaults
	if c.Source.DPI <= 0 {
		c.Source.DPI = sensitivity.DefaultDPI
	}
	if c.Source.Sens <= 0 {
		c.Source.Sens = 1
	}
	if c.Source.Pointer <= 0 {
		c.Source.Pointer = 1
	}
	// same mouse on both sides unless told otherwise
	if c.Target.DPI <= 0 {
		c.Target.DPI = c.Source.DPI
	}
	if c.Target.Sens <= 0 {
		c.Target.Sens = 1
	}
	if c.Target.Pointer <= 0 {
		c.Target.Pointer = c.Source.Pointer
	}
	if c.Source.Name == "" {
		c.Source.Name = c.Source.Game
	}
	if c.Target.Name == "" {
		c.Target.Name = c.Target.Game
	}
}

// Validate checks that both sides name a game or engine.
func (c *Config) Validate() error {
	var errs []error
	if c.Source.Game == "" {
		errs = append(errs, errors.New("config: source game is required"))
	}
	if c.Target.Game == "" {
		errs = append(errs, errors.New("config: target game is required"))
	}
	return errors.Join(errs...)
}
