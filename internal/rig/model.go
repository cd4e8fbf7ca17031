package rig

import "fmt"

// Shutter driver names accepted in rig files.
const (
	DriverDummy  = "dummy"
	DriverRemote = "remote"
)

// Motor declares one motor and its linear calibration.
type Motor struct {
	Name         string    `hcl:"name,label"`
	StepsPerUnit float64   `hcl:"steps_per_unit"`
	Offset       float64   `hcl:"offset,optional"`
	Unit         string    `hcl:"unit,optional"`
	SoftLimits   []float64 `hcl:"soft_limits,optional"`
}

// Shutter declares one shutter. Remote shutters address an indexed shutter
// on the gateway.
type Shutter struct {
	Name   string `hcl:"name,label"`
	Driver string `hcl:"driver,optional"`
	Index  int    `hcl:"index,optional"`
}

// Monochromator declares one monochromator.
type Monochromator struct {
	Name   string  `hcl:"name,label"`
	Energy float64 `hcl:"energy,optional"`
}

// Gateway declares the rig's device gateway endpoint.
type Gateway struct {
	URL                string `hcl:"url"`
	Namespace          string `hcl:"namespace,optional"`
	InsecureSkipVerify bool   `hcl:"insecure_skip_verify,optional"`
}

// Model is the merged, validated content of all rig files.
type Model struct {
	Motors         []Motor
	Shutters       []Shutter
	Monochromators []Monochromator
	Gateway        *Gateway
}

// HasRemoteShutter reports whether any shutter needs the gateway.
func (m *Model) HasRemoteShutter() bool {
	for _, s := range m.Shutters {
		if s.Driver == DriverRemote {
			return true
		}
	}
	return false
}

// normalize applies defaults and checks cross-device constraints.
func (m *Model) normalize() error {
	seen := make(map[string]struct{})
	unique := func(name string) error {
		if name == "" {
			return fmt.Errorf("device with empty name")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("device %q declared more than once", name)
		}
		seen[name] = struct{}{}
		return nil
	}

	for i := range m.Motors {
		mt := &m.Motors[i]
		if err := unique(mt.Name); err != nil {
			return err
		}
		if mt.StepsPerUnit == 0 {
			return fmt.Errorf("motor %q: steps_per_unit must be non-zero", mt.Name)
		}
		if mt.Unit == "" {
			mt.Unit = "mm"
		}
		if n := len(mt.SoftLimits); n != 0 && n != 2 {
			return fmt.Errorf("motor %q: soft_limits must hold exactly [low, high]", mt.Name)
		}
		if len(mt.SoftLimits) == 2 && mt.SoftLimits[0] > mt.SoftLimits[1] {
			return fmt.Errorf("motor %q: soft_limits low exceeds high", mt.Name)
		}
	}

	for i := range m.Shutters {
		sh := &m.Shutters[i]
		if err := unique(sh.Name); err != nil {
			return err
		}
		switch sh.Driver {
		case "":
			sh.Driver = DriverDummy
		case DriverDummy, DriverRemote:
		default:
			return fmt.Errorf("shutter %q: unknown driver %q", sh.Name, sh.Driver)
		}
		if sh.Driver == DriverRemote && m.Gateway == nil {
			return fmt.Errorf("shutter %q: remote driver requires a gateway block", sh.Name)
		}
	}

	for i := range m.Monochromators {
		mc := &m.Monochromators[i]
		if err := unique(mc.Name); err != nil {
			return err
		}
		if mc.Energy == 0 {
			mc.Energy = 100
		}
		if mc.Energy < 0 {
			return fmt.Errorf("monochromator %q: energy must be positive", mc.Name)
		}
	}

	return nil
}
