package sensitivity

import "math"

// Tolerance is the relative difference under which two real
// sensitivities count as equal.
const Tolerance = 1e-9

// Result describes a finished conversion. Source and Target point at the
// profiles passed to Convert.
type Result struct {
	Source   *Profile
	Target   *Profile
	Previous float64
	Changed  bool
}

// Convert sets target's in-game sensitivity so that its real sensitivity
// matches source's. Source is never modified. Targets that already match
// are left alone.
func Convert(source, target *Profile) (Result, error) {
	if err := checkConvertible(source, true); err != nil {
		return Result{}, err
	}
	if err := checkConvertible(target, false); err != nil {
		return Result{}, err
	}

	res := Result{Source: source, Target: target, Previous: target.inGameSens}
	if SameFeel(source, target) {
		return res, nil
	}

	sens := source.body() / (target.yaw * target.dpi * target.pointerMultiplier)
	if !isFinite(sens) || sens <= 0 {
		return Result{}, &ConversionError{Profile: target.name, Engine: target.engine, Field: "in-game sensitivity", Reason: describe(sens)}
	}
	target.inGameSens = sens
	res.Changed = true
	return res, nil
}

// SameFeel reports whether a and b need the same mouse travel for a full
// turn, within Tolerance.
func SameFeel(a, b *Profile) bool {
	x, y := a.RealSensitivityCm(), b.RealSensitivityCm()
	if !isFinite(x) || !isFinite(y) {
		return false
	}
	return math.Abs(x-y) <= Tolerance*math.Max(math.Abs(x), math.Abs(y))
}

// DeriveYaw solves for the yaw coefficient of an engine whose in-game
// sensitivity knownSens, at the given dpi and pointer multiplier, feels
// the same as reference. This is how coefficients for new engines are
// found from a trusted calculator's output.
func DeriveYaw(reference *Profile, dpi, pointerMultiplier, knownSens float64) (float64, error) {
	if err := checkConvertible(reference, true); err != nil {
		return 0, err
	}
	if err := checkPositive("dpi", dpi); err != nil {
		return 0, err
	}
	if err := checkPositive("pointer multiplier", pointerMultiplier); err != nil {
		return 0, err
	}
	if err := checkPositive("in-game sensitivity", knownSens); err != nil {
		return 0, err
	}
	return reference.body() / (dpi * pointerMultiplier * knownSens), nil
}

type operand struct {
	name string
	v    float64
}

func checkConvertible(p *Profile, needSens bool) error {
	ops := []operand{
		{"yaw coefficient", p.yaw},
		{"dpi", p.dpi},
		{"pointer multiplier", p.pointerMultiplier},
	}
	if needSens {
		ops = append(ops, operand{"in-game sensitivity", p.inGameSens})
	}
	for _, op := range ops {
		if !(op.v > 0) || !isFinite(op.v) {
			return &ConversionError{Profile: p.name, Engine: p.engine, Field: op.name, Reason: describe(op.v)}
		}
	}
	return nil
}

// describe says what is wrong with an operand that is not a positive
// finite number.
func describe(v float64) string {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return "is not finite"
	case v == 0:
		return "is zero"
	default:
		return "is negative"
	}
}
