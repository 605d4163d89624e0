package sensitivity

import "math"

const (
	FullTurnDegrees    = 360.0
	CentimetersPerInch = 2.54

	DefaultDPI             = 800
	DefaultFOV             = 90
	DefaultResolutionWidth = 1080
	DefaultFrameRate       = 90
)

// Profile is one game's mouse configuration. Engine and yaw are fixed at
// construction; every other figure can be tuned through validated setters.
type Profile struct {
	name   string
	engine string
	yaw    float64

	dpi               float64
	pointerMultiplier float64
	inGameSens        float64

	// metadata only, never read by Convert
	fov             float64
	mouseAccel      float64
	resolutionWidth int
	frameRate       int
}

func (p *Profile) Name() string   { return p.name }
func (p *Profile) Engine() string { return p.engine }
func (p *Profile) Yaw() float64   { return p.yaw }

func (p *Profile) DPI() float64               { return p.dpi }
func (p *Profile) PointerMultiplier() float64 { return p.pointerMultiplier }
func (p *Profile) InGameSens() float64        { return p.inGameSens }

func (p *Profile) FOV() float64         { return p.fov }
func (p *Profile) MouseAccel() float64  { return p.mouseAccel }
func (p *Profile) ResolutionWidth() int { return p.resolutionWidth }
func (p *Profile) FrameRate() int       { return p.frameRate }

// SetFigures sets DPI, in-game sensitivity and pointer multiplier at once.
// Nothing changes unless all three are valid.
func (p *Profile) SetFigures(dpi, inGameSens, pointerMultiplier float64) error {
	if err := checkPositive("dpi", dpi); err != nil {
		return err
	}
	if err := checkPositive("in-game sensitivity", inGameSens); err != nil {
		return err
	}
	if err := checkPositive("pointer multiplier", pointerMultiplier); err != nil {
		return err
	}
	p.dpi = dpi
	p.inGameSens = inGameSens
	p.pointerMultiplier = pointerMultiplier
	return nil
}

func (p *Profile) SetDPI(dpi float64) error {
	if err := checkPositive("dpi", dpi); err != nil {
		return err
	}
	p.dpi = dpi
	return nil
}

func (p *Profile) SetInGameSens(sens float64) error {
	if err := checkPositive("in-game sensitivity", sens); err != nil {
		return err
	}
	p.inGameSens = sens
	return nil
}

func (p *Profile) SetPointerMultiplier(m float64) error {
	if err := checkPositive("pointer multiplier", m); err != nil {
		return err
	}
	p.pointerMultiplier = m
	return nil
}

// SetFOV accepts a horizontal field of view in degrees, 0 < fov < 180.
func (p *Profile) SetFOV(fov float64) error {
	if !isFinite(fov) || fov <= 0 || fov >= 180 {
		return &ParameterError{Field: "fov", Value: fov, Want: "between 0 and 180 degrees"}
	}
	p.fov = fov
	return nil
}

func (p *Profile) SetMouseAccel(accel float64) error {
	if !isFinite(accel) || accel < 0 {
		return &ParameterError{Field: "mouse acceleration", Value: accel, Want: "zero or greater"}
	}
	p.mouseAccel = accel
	return nil
}

func (p *Profile) SetResolutionWidth(w int) error {
	if w <= 0 {
		return &ParameterError{Field: "resolution width", Value: float64(w), Want: "greater than zero"}
	}
	p.resolutionWidth = w
	return nil
}

func (p *Profile) SetFrameRate(fps int) error {
	if fps <= 0 {
		return &ParameterError{Field: "frame rate", Value: float64(fps), Want: "greater than zero"}
	}
	p.frameRate = fps
	return nil
}

// Convertible reports whether the profile has a usable yaw coefficient.
func (p *Profile) Convertible() bool {
	return p.yaw > 0 && isFinite(p.yaw)
}

// body is the product that real sensitivity is inversely proportional to.
func (p *Profile) body() float64 {
	return p.yaw * p.dpi * p.pointerMultiplier * p.inGameSens
}

// RealSensitivityIn returns the inches of mouse travel for a full turn.
// It is +Inf when the profile is not convertible.
func (p *Profile) RealSensitivityIn() float64 {
	return FullTurnDegrees / p.body()
}

// RealSensitivityCm returns the centimeters of mouse travel for a full turn.
func (p *Profile) RealSensitivityCm() float64 {
	return p.RealSensitivityIn() * CentimetersPerInch
}

// DegreesPerCount is the in-game rotation produced by one mouse count.
func (p *Profile) DegreesPerCount() float64 {
	return p.yaw * p.pointerMultiplier * p.inGameSens
}

// CountsPer360 is the number of mouse counts needed for a full turn.
func (p *Profile) CountsPer360() float64 {
	return FullTurnDegrees / p.DegreesPerCount()
}

func checkPositive(field string, v float64) error {
	if !isFinite(v) || v <= 0 {
		return &ParameterError{Field: field, Value: v, Want: "greater than zero"}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
