package monochromator

import "sync"

// DummyBackend holds an energy in memory, starting at 100 keV.
type DummyBackend struct {
	mu     sync.Mutex
	energy float64
}

// NewDummyBackend creates a backend at 100 keV.
func NewDummyBackend() *DummyBackend {
	return &DummyBackend{energy: 100}
}

// Energy implements Backend.
func (d *DummyBackend) Energy() (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.energy, nil
}

// SetEnergy implements Backend.
func (d *DummyBackend) SetEnergy(keV float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.energy = keV
	return nil
}

// NewDummy creates a monochromator with no hardware attached.
func NewDummy(name string) *Monochromator {
	return New(name, NewDummyBackend())
}
