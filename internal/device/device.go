package device

import (
	"fmt"
	"log/slog"
	"sync"
)

// State names a condition a device can be in.
type State string

// StateNA is the state every device starts in and always accepts.
const StateNA State = "n/a"

// Device is the common surface of all hardware abstractions. Locking gives
// a session exclusive access for the duration of a critical section.
type Device interface {
	sync.Locker
	Name() string
	State() State
	Parameters() []*Parameter
	Parameter(name string) (*Parameter, bool)
}

// Base implements the bookkeeping shared by all devices: the parameter
// table, the state set, and the session lock. Concrete devices embed it.
type Base struct {
	name string

	mu sync.Mutex // session lock, held via Lock/Unlock

	stateMu sync.Mutex
	state   State
	states  map[State]struct{}

	params []*Parameter
	byName map[string]*Parameter
}

// NewBase creates a device base named name that accepts the given states in
// addition to StateNA, starting in StateNA.
func NewBase(name string, states ...State) *Base {
	b := &Base{
		name:   name,
		state:  StateNA,
		states: map[State]struct{}{StateNA: {}},
		byName: make(map[string]*Parameter),
	}
	for _, s := range states {
		b.states[s] = struct{}{}
	}
	return b
}

// Name returns the device name.
func (b *Base) Name() string {
	return b.name
}

// Lock acquires the session lock.
func (b *Base) Lock() {
	b.mu.Lock()
}

// Unlock releases the session lock.
func (b *Base) Unlock() {
	b.mu.Unlock()
}

// AddStates extends the set of accepted states.
func (b *Base) AddStates(states ...State) {
	b.stateMu.Lock()
	defer b.stateMu.Unlock()
	for _, s := range states {
		b.states[s] = struct{}{}
	}
}

// State returns the current state.
func (b *Base) State() State {
	b.stateMu.Lock()
	defer b.stateMu.Unlock()
	return b.state
}

// SetState transitions to s. An unknown state is logged and ignored rather
// than corrupting the device's state.
func (b *Base) SetState(s State) {
	b.stateMu.Lock()
	defer b.stateMu.Unlock()
	if _, ok := b.states[s]; !ok {
		slog.Warn("State unknown for device.", "device", b.name, "state", string(s))
		return
	}
	b.state = s
}

// AddParameter registers p into the device's table. A duplicate name is a
// programmer error and panics.
func (b *Base) AddParameter(p *Parameter) {
	if _, exists := b.byName[p.Name]; exists {
		panic(fmt.Sprintf("device %q: parameter %q already registered", b.name, p.Name))
	}
	b.params = append(b.params, p)
	b.byName[p.Name] = p
}

// Parameter returns the named parameter and whether it exists.
func (b *Base) Parameter(name string) (*Parameter, bool) {
	p, ok := b.byName[name]
	return p, ok
}

// Parameters returns the parameters in registration order.
func (b *Base) Parameters() []*Parameter {
	out := make([]*Parameter, len(b.params))
	copy(out, b.params)
	return out
}
