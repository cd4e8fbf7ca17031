package rig

import (
	"fmt"

	"github.com/beamkit/beamctl/internal/device"
	"github.com/beamkit/beamctl/internal/device/monochromator"
	"github.com/beamkit/beamctl/internal/device/motor"
	"github.com/beamkit/beamctl/internal/device/shutter"
)

// Rig holds the instantiated devices of a loaded model, in declaration
// order.
type Rig struct {
	devices map[string]device.Device
	order   []string
}

// Build instantiates every device in the model. commander carries gateway
// commands for remote shutters; it may be nil when the model declares none.
func Build(model *Model, commander shutter.Commander) (*Rig, error) {
	r := &Rig{devices: make(map[string]device.Device)}

	for _, m := range model.Motors {
		var limiter device.Limiter
		if len(m.SoftLimits) == 2 {
			limiter = motor.RangeLimiter(m.SoftLimits[0], m.SoftLimits[1])
		}
		calibration := motor.LinearCalibration{StepsPerUnit: m.StepsPerUnit, Offset: m.Offset}
		r.add(motor.New(m.Name, m.Unit, motor.NewDummy(), calibration, limiter))
	}

	for _, s := range model.Shutters {
		switch s.Driver {
		case DriverRemote:
			if commander == nil {
				return nil, fmt.Errorf("shutter %q: no gateway connection available", s.Name)
			}
			sh, err := shutter.NewRemote(s.Name, commander, s.Index)
			if err != nil {
				return nil, err
			}
			r.add(sh)
		default:
			r.add(shutter.NewDummy(s.Name))
		}
	}

	for _, mc := range model.Monochromators {
		dev := monochromator.NewDummy(mc.Name)
		if err := dev.SetEnergy(mc.Energy); err != nil {
			return nil, fmt.Errorf("monochromator %q: %w", mc.Name, err)
		}
		r.add(dev)
	}

	return r, nil
}

func (r *Rig) add(d device.Device) {
	r.devices[d.Name()] = d
	r.order = append(r.order, d.Name())
}

// Device returns the named device and whether it exists.
func (r *Rig) Device(name string) (device.Device, bool) {
	d, ok := r.devices[name]
	return d, ok
}

// Devices returns every device in declaration order.
func (r *Rig) Devices() []device.Device {
	out := make([]device.Device, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.devices[name])
	}
	return out
}

// Motor returns the named device as a motor.
func (r *Rig) Motor(name string) (*motor.Motor, error) {
	d, ok := r.devices[name]
	if !ok {
		return nil, fmt.Errorf("no device named %q", name)
	}
	m, ok := d.(*motor.Motor)
	if !ok {
		return nil, fmt.Errorf("device %q is not a motor", name)
	}
	return m, nil
}

// Shutter returns the named device as a shutter.
func (r *Rig) Shutter(name string) (*shutter.Shutter, error) {
	d, ok := r.devices[name]
	if !ok {
		return nil, fmt.Errorf("no device named %q", name)
	}
	s, ok := d.(*shutter.Shutter)
	if !ok {
		return nil, fmt.Errorf("device %q is not a shutter", name)
	}
	return s, nil
}
