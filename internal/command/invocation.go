package command

import (
	"fmt"
	"time"
)

// Invocation is the typed parameter object a handler receives. It holds the
// parsed value of every flag in the entry's table, with the routing key
// already stripped by the dispatcher. Invocations are ephemeral; they live
// for a single handler call.
type Invocation struct {
	values   map[string]any
	provided map[string]struct{}
}

// NewInvocation builds an invocation from parsed values. provided names the
// flags the user set explicitly, as opposed to defaults.
func NewInvocation(values map[string]any, provided map[string]struct{}) *Invocation {
	return &Invocation{values: values, provided: provided}
}

// Provided reports whether the user set the flag on the command line.
func (inv *Invocation) Provided(name string) bool {
	_, ok := inv.provided[name]
	return ok
}

// String returns the value of a string flag. It panics if the flag is not in
// the entry's table; a handler asking for a flag it never declared is a
// programmer error.
func (inv *Invocation) String(name string) string {
	return value[string](inv, name)
}

// Int returns the value of an int flag.
func (inv *Invocation) Int(name string) int {
	return value[int](inv, name)
}

// Float returns the value of a float flag.
func (inv *Invocation) Float(name string) float64 {
	return value[float64](inv, name)
}

// Bool returns the value of a bool flag.
func (inv *Invocation) Bool(name string) bool {
	return value[bool](inv, name)
}

// Duration returns the value of a duration flag.
func (inv *Invocation) Duration(name string) time.Duration {
	return value[time.Duration](inv, name)
}

func value[T any](inv *Invocation, name string) T {
	v, ok := inv.values[name]
	if !ok {
		panic(fmt.Sprintf("command: flag %q not declared for this command", name))
	}
	t, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("command: flag %q holds %T, requested as %T", name, v, t))
	}
	return t
}
