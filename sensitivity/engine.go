package sensitivity

import (
	"sort"
	"strings"
)

// Empirical coefficients, reverse-engineered against a reference
// calculator. cryengine is accurate to about a thousandth.
var builtinYaw = map[string]float64{
	"source":    0.022,
	"cryengine": 0.04301,
	"overwatch": 0.00659,
	"rage":      0.022,
	"unity":     0,
	"unreal4":   0,
	"unreal5":   0,
}

var defaultTable = NewTable(builtinYaw)

// Table maps normalized engine ids to yaw coefficients. The zero value is
// an empty table. A Table is never modified after construction.
type Table struct {
	yaw map[string]float64
}

// NewTable copies entries into a new Table, normalizing every key.
func NewTable(entries map[string]float64) Table {
	t := Table{yaw: make(map[string]float64, len(entries))}
	for id, yaw := range entries {
		t.yaw[NormalizeEngine(id)] = yaw
	}
	return t
}

// DefaultTable returns the built-in engine table.
func DefaultTable() Table {
	return defaultTable
}

// NormalizeEngine trims and lowercases an engine label.
func NormalizeEngine(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Lookup returns the yaw coefficient for a normalized engine id. Unknown
// engines and listed engines without a positive finite coefficient return
// 0 and an *EngineError.
func (t Table) Lookup(id string) (float64, error) {
	yaw, ok := t.yaw[id]
	if !ok {
		return 0, &EngineError{Engine: id}
	}
	if !(yaw > 0) || !isFinite(yaw) {
		return 0, &EngineError{Engine: id, Listed: true}
	}
	return yaw, nil
}

// Has reports whether id is listed, supported or not.
func (t Table) Has(id string) bool {
	_, ok := t.yaw[NormalizeEngine(id)]
	return ok
}

// With returns a copy of t with id set to yaw.
func (t Table) With(id string, yaw float64) Table {
	out := Table{yaw: make(map[string]float64, len(t.yaw)+1)}
	for k, v := range t.yaw {
		out.yaw[k] = v
	}
	out.yaw[NormalizeEngine(id)] = yaw
	return out
}

// Engines lists every engine id in sorted order.
func (t Table) Engines() []string {
	ids := make([]string, 0, len(t.yaw))
	for id := range t.yaw {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (t Table) Len() int {
	return len(t.yaw)
}

// NewProfile creates a profile whose yaw coefficient comes from t. The
// profile is always returned; a non-nil error means the engine cannot
// take part in a conversion.
func (t Table) NewProfile(name, engine string) (*Profile, error) {
	id := NormalizeEngine(engine)
	yaw, err := t.Lookup(id)
	p := &Profile{
		name:              name,
		engine:            id,
		yaw:               yaw,
		dpi:               DefaultDPI,
		pointerMultiplier: 1,
		inGameSens:        1,
		fov:               DefaultFOV,
		resolutionWidth:   DefaultResolutionWidth,
		frameRate:         DefaultFrameRate,
	}
	return p, err
}

// NewProfile creates a profile using the built-in engine table.
func NewProfile(name, engine string) (*Profile, error) {
	return defaultTable.NewProfile(name, engine)
}
