package motor

import "sync"

// Dummy is an in-memory motor backend with clamping hard limits, useful for
// tests and rigs that have no hardware attached.
type Dummy struct {
	mu       sync.Mutex
	position float64
	velocity float64
	low      float64
	high     float64
	inLimit  bool
}

// NewDummy creates a dummy backend with hard limits at -100 and 100 steps.
func NewDummy() *Dummy {
	return NewDummyWithLimits(-100, 100)
}

// NewDummyWithLimits creates a dummy backend with the given hard limits.
func NewDummyWithLimits(low, high float64) *Dummy {
	return &Dummy{low: low, high: high}
}

// HardLimits returns the backend's hard limits in steps.
func (d *Dummy) HardLimits() (low, high float64) {
	return d.low, d.high
}

// Position implements Backend.
func (d *Dummy) Position() (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.position, nil
}

// SetPosition implements Backend. Targets beyond a hard limit clamp to the
// limit and leave the backend in the limit state.
func (d *Dummy) SetPosition(steps float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch {
	case steps < d.low:
		d.position = d.low
		d.inLimit = true
	case steps > d.high:
		d.position = d.high
		d.inLimit = true
	default:
		d.position = steps
		d.inLimit = false
	}
	return nil
}

// Stop implements Backend.
func (d *Dummy) Stop() error {
	return nil
}

// Home implements Backend.
func (d *Dummy) Home() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.position = 0
	d.inLimit = false
	return nil
}

// InHardLimit implements Backend.
func (d *Dummy) InHardLimit() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inLimit
}

// Velocity implements VelocityBackend.
func (d *Dummy) Velocity() (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.velocity, nil
}

// SetVelocity implements VelocityBackend.
func (d *Dummy) SetVelocity(steps float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.velocity = steps
	return nil
}
