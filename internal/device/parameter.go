package device

import (
	"errors"
	"fmt"
)

// ErrReadOnly is returned when setting a parameter that has no setter.
var ErrReadOnly = errors.New("parameter is read-only")

// ErrSoftLimit is returned when a limiter rejects a value.
var ErrSoftLimit = errors.New("value outside soft limits")

// ErrHardLimit is returned when a device hits a hard limit state.
var ErrHardLimit = errors.New("hard limit reached")

// Limiter reports whether a value is acceptable for a parameter.
type Limiter func(value float64) bool

// Parameter is one named, unit-carrying value of a device. Values are
// floats in the parameter's unit; conversion to device units is the
// owning device's concern.
type Parameter struct {
	Name string
	Unit string
	Help string

	get     func() (float64, error)
	set     func(float64) error
	limiter Limiter
}

// NewParameter creates a read-only parameter. get must not be nil.
func NewParameter(name, unit, help string, get func() (float64, error)) *Parameter {
	if get == nil {
		panic(fmt.Sprintf("parameter %q has no getter", name))
	}
	return &Parameter{Name: name, Unit: unit, Help: help, get: get}
}

// WithSetter makes the parameter writable and returns it.
func (p *Parameter) WithSetter(set func(float64) error) *Parameter {
	p.set = set
	return p
}

// WithLimiter installs a soft-limit check applied before every Set and
// returns the parameter.
func (p *Parameter) WithLimiter(l Limiter) *Parameter {
	p.limiter = l
	return p
}

// Writable reports whether the parameter has a setter.
func (p *Parameter) Writable() bool {
	return p.set != nil
}

// Get returns the current value.
func (p *Parameter) Get() (float64, error) {
	return p.get()
}

// Set writes a new value. The limiter, when present, is consulted first; a
// rejected value leaves the device untouched and returns ErrSoftLimit.
func (p *Parameter) Set(value float64) error {
	if p.set == nil {
		return fmt.Errorf("%q: %w", p.Name, ErrReadOnly)
	}
	if p.limiter != nil && !p.limiter(value) {
		return fmt.Errorf("%q: %g %s: %w", p.Name, value, p.Unit, ErrSoftLimit)
	}
	return p.set(value)
}
