// Package shutter implements beam shutters.
package shutter

import (
	"context"

	"github.com/beamkit/beamctl/internal/device"
)

// Shutter states beyond device.StateNA.
const (
	StateOpen   device.State = "open"
	StateClosed device.State = "closed"
)

// Driver is the hardware side of a shutter.
type Driver interface {
	Open(ctx context.Context) error
	Close(ctx context.Context) error
}

// Shutter is a beam shutter.
type Shutter struct {
	*device.Base
	driver Driver
}

// New creates a shutter over driver.
func New(name string, driver Driver) *Shutter {
	return &Shutter{
		Base:   device.NewBase(name, StateOpen, StateClosed),
		driver: driver,
	}
}

// Open opens the shutter.
func (s *Shutter) Open(ctx context.Context) error {
	if err := s.driver.Open(ctx); err != nil {
		return err
	}
	s.SetState(StateOpen)
	return nil
}

// Close closes the shutter.
func (s *Shutter) Close(ctx context.Context) error {
	if err := s.driver.Close(ctx); err != nil {
		return err
	}
	s.SetState(StateClosed)
	return nil
}

// IsOpen reports whether the shutter is known to be open.
func (s *Shutter) IsOpen() bool {
	return s.State() == StateOpen
}
