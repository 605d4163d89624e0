package engines

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/sensconv/sensitivity"
)

// ScriptTimeout bounds a single coefficient script run.
const ScriptTimeout = 2 * time.Second

// EvalYaw runs a coefficient script and returns the value it assigns to
// the global yaw. The script may call coefficient(id) to read any engine
// already present in known.
func EvalYaw(name string, src []byte, known sensitivity.Table) (float64, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("coefficient", coefficientFunc(known)); err != nil {
		return 0, fmt.Errorf("script %s: %w", name, err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return 0, fmt.Errorf("script %s: compile: %w", name, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), ScriptTimeout)
	defer cancel()
	if err := compiled.RunContext(ctx); err != nil {
		return 0, fmt.Errorf("script %s: run: %w", name, err)
	}

	v := compiled.Get("yaw")
	if v.IsUndefined() {
		return 0, fmt.Errorf("script %s: yaw is not set", name)
	}
	switch v.ValueType() {
	case "int", "float":
	default:
		return 0, fmt.Errorf("script %s: yaw is %s, want a number", name, v.ValueType())
	}

	yaw := v.Float()
	if math.IsNaN(yaw) || math.IsInf(yaw, 0) {
		return 0, fmt.Errorf("script %s: yaw %g is not finite", name, yaw)
	}
	if yaw < 0 {
		return 0, fmt.Errorf("script %s: yaw %g must be zero or greater", name, yaw)
	}
	return yaw, nil
}

func coefficientFunc(known sensitivity.Table) *tengo.UserFunction {
	return &tengo.UserFunction{Name: "coefficient", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		id, ok := tengo.ToString(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "id", Expected: "string", Found: args[0].TypeName()}
		}
		yaw, err := known.Lookup(sensitivity.NormalizeEngine(id))
		if err != nil {
			return nil, err
		}
		return &tengo.Float{Value: yaw}, nil
	}}
}
