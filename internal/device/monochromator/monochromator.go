// Package monochromator implements monochromators selecting a single
// photon energy out of the beam.
package monochromator

import (
	"github.com/beamkit/beamctl/internal/device"
)

// hcKeVnm is the Planck constant times the speed of light, in keV·nm.
const hcKeVnm = 1.239841984

// Backend is the hardware side of a monochromator, working in keV.
type Backend interface {
	Energy() (float64, error)
	SetEnergy(keV float64) error
}

// Monochromator selects the beam energy. The wavelength parameter is
// derived from energy and writable through the same backend.
type Monochromator struct {
	*device.Base
	backend Backend
}

// New creates a monochromator over backend.
func New(name string, backend Backend) *Monochromator {
	m := &Monochromator{
		Base:    device.NewBase(name),
		backend: backend,
	}
	m.AddParameter(device.NewParameter("energy", "keV", "Energy of the beam", m.backend.Energy).
		WithSetter(m.backend.SetEnergy))
	m.AddParameter(device.NewParameter("wavelength", "nm", "Wavelength of the beam", m.wavelength).
		WithSetter(m.setWavelength))
	return m
}

// Energy returns the current energy in keV.
func (m *Monochromator) Energy() (float64, error) {
	return m.backend.Energy()
}

// SetEnergy sets the energy in keV.
func (m *Monochromator) SetEnergy(keV float64) error {
	return m.backend.SetEnergy(keV)
}

// Wavelength returns the current wavelength in nm.
func (m *Monochromator) Wavelength() (float64, error) {
	return m.wavelength()
}

func (m *Monochromator) wavelength() (float64, error) {
	energy, err := m.backend.Energy()
	if err != nil {
		return 0, err
	}
	return hcKeVnm / energy, nil
}

func (m *Monochromator) setWavelength(nm float64) error {
	return m.backend.SetEnergy(hcKeVnm / nm)
}
