// Package motor implements everything that moves.
//
// A motor converts between user coordinates and device steps through a
// Calibration. Positions are set through the device parameter table, so a
// soft limiter installed on the position parameter is consulted before the
// hardware is touched; hard limits are the backend's to detect.
package motor

import (
	"fmt"

	"github.com/beamkit/beamctl/internal/device"
)

// Motor states beyond device.StateNA.
const (
	StateStandby device.State = "standby"
	StateMoving  device.State = "moving"
	StateLimit   device.State = "limit"
)

// Calibration converts between user and device units.
type Calibration interface {
	// ToUser returns the value in user units.
	ToUser(steps float64) float64
	// ToSteps returns the value in device units.
	ToSteps(value float64) float64
}

// Backend is the hardware side of a motor, working in device steps.
type Backend interface {
	Position() (float64, error)
	SetPosition(steps float64) error
	Stop() error
	Home() error
	// InHardLimit reports whether the last motion ran into a hard limit.
	InHardLimit() bool
}

// Motor is the base for everything that moves.
type Motor struct {
	*device.Base
	calibration Calibration
	backend     Backend
	position    *device.Parameter
}

// New creates a motor over backend. unit names the user unit of the
// position parameter; limiter, when non-nil, soft-limits target positions.
func New(name, unit string, backend Backend, calibration Calibration, limiter device.Limiter) *Motor {
	m := &Motor{
		Base:        device.NewBase(name, StateStandby, StateMoving, StateLimit),
		calibration: calibration,
		backend:     backend,
	}
	m.position = device.NewParameter("position", unit, "Position of the motor", m.calibratedPosition).
		WithSetter(m.setCalibratedPosition).
		WithLimiter(limiter)
	m.AddParameter(m.position)
	return m
}

// Position returns the current position in user units.
func (m *Motor) Position() (float64, error) {
	return m.position.Get()
}

// SetPosition moves to an absolute position in user units.
func (m *Motor) SetPosition(position float64) error {
	return m.position.Set(position)
}

// Move moves the motor by delta user units.
func (m *Motor) Move(delta float64) error {
	current, err := m.Position()
	if err != nil {
		return err
	}
	return m.SetPosition(current + delta)
}

// Stop stops the motion.
func (m *Motor) Stop() error {
	if err := m.backend.Stop(); err != nil {
		return err
	}
	m.SetState(StateStandby)
	return nil
}

// Home homes the motor.
func (m *Motor) Home() error {
	if err := m.backend.Home(); err != nil {
		return err
	}
	m.SetState(StateStandby)
	return nil
}

// InHardLimit reports whether the motor sits in a hard limit state.
func (m *Motor) InHardLimit() bool {
	return m.backend.InHardLimit()
}

func (m *Motor) calibratedPosition() (float64, error) {
	steps, err := m.backend.Position()
	if err != nil {
		return 0, err
	}
	return m.calibration.ToUser(steps), nil
}

func (m *Motor) setCalibratedPosition(position float64) error {
	m.SetState(StateMoving)
	if err := m.backend.SetPosition(m.calibration.ToSteps(position)); err != nil {
		m.SetState(StateStandby)
		return err
	}
	if m.backend.InHardLimit() {
		m.SetState(StateLimit)
		return fmt.Errorf("motor %q at %g: %w", m.Name(), position, device.ErrHardLimit)
	}
	m.SetState(StateStandby)
	return nil
}

// RangeLimiter accepts values within [low, high], inclusive.
func RangeLimiter(low, high float64) device.Limiter {
	return func(value float64) bool {
		return value >= low && value <= high
	}
}
