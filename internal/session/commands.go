package session

import (
	"github.com/beamkit/beamctl/internal/command"
)

// rigFlag is shared by every session command.
var rigFlag = command.Flag{
	Name:    "rig",
	Kind:    command.String,
	Help:    "Path to a rig file or a directory of rig files.",
	Default: "rig",
}

// Register adds every session command to the registry, in the order the
// help output lists them.
func (s *Service) Register(reg *command.Registry) {
	reg.Register(&command.Entry{
		Name: "start",
		Doc: "Start a control session. Connects the gateway when one is declared, " +
			"homes every motor and reports the state of each device.",
		Flags: []command.Flag{
			rigFlag,
			{Name: "name", Kind: command.String, Help: "Name of the session.", Required: true},
		},
		Run: s.start,
	})

	reg.Register(&command.Entry{
		Name: "show",
		Doc:  "Show the devices configured in a rig. Prints every device with its state and parameter values.",
		Flags: []command.Flag{
			rigFlag,
			{Name: "device", Kind: command.String, Help: "Show only this device."},
		},
		Run: s.show,
	})

	reg.Register(&command.Entry{
		Name: "get",
		Doc:  "Read one device parameter. Prints the value followed by its unit.",
		Flags: []command.Flag{
			rigFlag,
			{Name: "device", Kind: command.String, Help: "Device name.", Required: true},
			{Name: "param", Kind: command.String, Help: "Parameter name.", Required: true},
		},
		Run: s.get,
	})

	reg.Register(&command.Entry{
		Name: "set",
		Doc:  "Write one device parameter.",
		Flags: []command.Flag{
			rigFlag,
			{Name: "device", Kind: command.String, Help: "Device name.", Required: true},
			{Name: "param", Kind: command.String, Help: "Parameter name.", Required: true},
			{Name: "value", Kind: command.Float, Help: "New value, in the parameter's unit.", Required: true},
		},
		Run: s.set,
	})

	reg.Register(&command.Entry{
		Name: "move",
		Doc:  "Move a motor by a relative delta in user units.",
		Flags: []command.Flag{
			rigFlag,
			{Name: "device", Kind: command.String, Help: "Motor name.", Required: true},
			{Name: "delta", Kind: command.Float, Help: "Relative move, in the motor's unit.", Required: true},
		},
		Run: s.move,
	})

	reg.Register(&command.Entry{
		Name: "home",
		Doc:  "Home a motor.",
		Flags: []command.Flag{
			rigFlag,
			{Name: "device", Kind: command.String, Help: "Motor name.", Required: true},
		},
		Run: s.home,
	})

	reg.Register(&command.Entry{
		Name: "shutter",
		Doc:  "Open or close a shutter.",
		Flags: []command.Flag{
			rigFlag,
			{Name: "device", Kind: command.String, Help: "Shutter name.", Required: true},
			{Name: "action", Kind: command.String, Help: "Either 'open' or 'close'.", Required: true},
		},
		Run: s.shutterAction,
	})

	reg.Register(&command.Entry{
		Name: "focus",
		Doc:  "Focus a motor against a feedback measure. Moves the motor until the measure peaks.",
		Flags: []command.Flag{
			rigFlag,
			{Name: "device", Kind: command.String, Help: "Motor name.", Required: true},
			{Name: "step", Kind: command.Float, Help: "Initial step, in the motor's unit.", Default: 1.0},
			{Name: "epsilon", Kind: command.Float, Help: "Convergence threshold, in the motor's unit.", Default: 1e-3},
			{Name: "peak", Kind: command.Float, Help: "Peak position of the dummy feedback measure.", Default: 18.75},
		},
		Run: s.focus,
	})
}
