package sensitivity

import (
	"errors"
	"fmt"
)

var (
	ErrUnrecognizedEngine   = errors.New("unrecognized engine")
	ErrDegenerateConversion = errors.New("conversion not supported for this engine")
	ErrInvalidParameter     = errors.New("invalid parameter")
)

// EngineError reports an engine label with no usable yaw coefficient.
// Listed is true when the engine is known but has no coefficient yet.
type EngineError struct {
	Engine string
	Listed bool
}

func (e *EngineError) Error() string {
	if e.Listed {
		return fmt.Sprintf("engine %q is not supported yet", e.Engine)
	}
	return fmt.Sprintf("unrecognized engine %q", e.Engine)
}

func (e *EngineError) Unwrap() error { return ErrUnrecognizedEngine }

// ConversionError names the profile and operand that made a conversion
// impossible. Reason reads as a predicate, e.g. "is zero".
type ConversionError struct {
	Profile string
	Engine  string
	Field   string
	Reason  string
}

func (e *ConversionError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "is not usable"
	}
	return fmt.Sprintf("convert %s (%s): %s %s: %v", e.Profile, e.Engine, e.Field, reason, ErrDegenerateConversion)
}

func (e *ConversionError) Unwrap() error { return ErrDegenerateConversion }

type ParameterError struct {
	Field string
	Value float64
	Want  string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s %g: must be %s", e.Field, e.Value, e.Want)
}

func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }
