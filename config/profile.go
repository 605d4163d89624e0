package config

import (
	"fmt"

	"github.com/milk9111/sensconv/sensitivity"
)

// Resolver maps a game label to an engine id.
type Resolver interface {
	Resolve(label string) (engine, game string)
}

// Build creates a profile from s. As with sensitivity.NewProfile, an
// unrecognized engine returns the profile together with the error; any
// other error returns a nil profile.
func (s ProfileSpec) Build(table sensitivity.Table, r Resolver) (*sensitivity.Profile, error) {
	engine := s.Game
	if r != nil {
		engine, _ = r.Resolve(s.Game)
	}

	p, engineErr := table.NewProfile(s.Name, engine)

	if err := p.SetFigures(s.DPI, s.Sens, s.Pointer); err != nil {
		return nil, fmt.Errorf("config: profile %s: %w", s.Name, err)
	}

	setters := []struct {
		set   bool
		apply func() error
	}{
		{s.FOV != 0, func() error { return p.SetFOV(s.FOV) }},
		{s.MouseAccel != 0, func() error { return p.SetMouseAccel(s.MouseAccel) }},
		{s.ResolutionWidth != 0, func() error { return p.SetResolutionWidth(s.ResolutionWidth) }},
		{s.FrameRate != 0, func() error { return p.SetFrameRate(s.FrameRate) }},
	}
	for _, st := range setters {
		if !st.set {
			continue
		}
		if err := st.apply(); err != nil {
			return nil, fmt.Errorf("config: profile %s: %w", s.Name, err)
		}
	}

	return p, engineErr
}
