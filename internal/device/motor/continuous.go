package motor

import "github.com/beamkit/beamctl/internal/device"

// VelocityBackend extends Backend with velocity control, in device steps
// per second.
type VelocityBackend interface {
	Backend
	Velocity() (float64, error)
	SetVelocity(steps float64) error
}

// ContinuousMotor is a movable on which one can also set velocity. It is
// inherently capable of discrete movement.
type ContinuousMotor struct {
	*Motor
	velocityCalibration Calibration
	backend             VelocityBackend
}

// NewContinuous creates a continuous motor with separate calibrations for
// position and velocity.
func NewContinuous(name, unit string, backend VelocityBackend, position, velocity Calibration, limiter device.Limiter) *ContinuousMotor {
	m := &ContinuousMotor{
		Motor:               New(name, unit, backend, position, limiter),
		velocityCalibration: velocity,
		backend:             backend,
	}
	m.AddParameter(device.NewParameter("velocity", unit+"/s", "Velocity of the motor", m.calibratedVelocity).
		WithSetter(m.setCalibratedVelocity))
	return m
}

// Velocity returns the current velocity in user units per second.
func (m *ContinuousMotor) Velocity() (float64, error) {
	return m.calibratedVelocity()
}

// SetVelocity sets the velocity in user units per second.
func (m *ContinuousMotor) SetVelocity(velocity float64) error {
	return m.setCalibratedVelocity(velocity)
}

func (m *ContinuousMotor) calibratedVelocity() (float64, error) {
	steps, err := m.backend.Velocity()
	if err != nil {
		return 0, err
	}
	return m.velocityCalibration.ToUser(steps), nil
}

func (m *ContinuousMotor) setCalibratedVelocity(velocity float64) error {
	return m.backend.SetVelocity(m.velocityCalibration.ToSteps(velocity))
}
