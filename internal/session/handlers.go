package session

import (
	"context"
	"fmt"

	"github.com/beamkit/beamctl/internal/command"
	"github.com/beamkit/beamctl/internal/ctxlog"
	"github.com/beamkit/beamctl/internal/device"
	"github.com/beamkit/beamctl/internal/device/motor"
	"github.com/beamkit/beamctl/internal/focus"
	"github.com/beamkit/beamctl/internal/rig"
)

func (s *Service) start(ctx context.Context, inv *command.Invocation) error {
	logger := ctxlog.FromContext(ctx)
	name := inv.String("name")

	r, closer, err := s.openRig(ctx, inv.String("rig"), true)
	if err != nil {
		return err
	}
	defer closer()

	for _, d := range r.Devices() {
		m, ok := d.(*motor.Motor)
		if !ok {
			continue
		}
		m.Lock()
		err := m.Home()
		m.Unlock()
		if err != nil {
			return fmt.Errorf("homing %q: %w", m.Name(), err)
		}
		logger.Debug("Motor homed.", "motor", m.Name())
	}

	logger.Info("Session started.", "session", name, "devices", len(r.Devices()))
	fmt.Fprintf(s.outW, "session %q ready\n", name)
	for _, d := range r.Devices() {
		fmt.Fprintf(s.outW, "  %s: %s\n", d.Name(), d.State())
	}
	return nil
}

func (s *Service) show(ctx context.Context, inv *command.Invocation) error {
	r, closer, err := s.openRig(ctx, inv.String("rig"), false)
	if err != nil {
		return err
	}
	defer closer()

	devices := r.Devices()
	if filter := inv.String("device"); filter != "" {
		d, ok := r.Device(filter)
		if !ok {
			return fmt.Errorf("no device named %q", filter)
		}
		devices = []device.Device{d}
	}

	for _, d := range devices {
		fmt.Fprintf(s.outW, "%s (%s)\n", d.Name(), d.State())
		for _, p := range d.Parameters() {
			value, err := p.Get()
			if err != nil {
				return fmt.Errorf("%s.%s: %w", d.Name(), p.Name, err)
			}
			fmt.Fprintf(s.outW, "  %s = %g %s\n", p.Name, value, p.Unit)
		}
	}
	return nil
}

func (s *Service) get(ctx context.Context, inv *command.Invocation) error {
	r, closer, err := s.openRig(ctx, inv.String("rig"), false)
	if err != nil {
		return err
	}
	defer closer()

	p, err := lookupParameter(r, inv.String("device"), inv.String("param"))
	if err != nil {
		return err
	}
	value, err := p.Get()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.outW, "%g %s\n", value, p.Unit)
	return nil
}

func (s *Service) set(ctx context.Context, inv *command.Invocation) error {
	r, closer, err := s.openRig(ctx, inv.String("rig"), false)
	if err != nil {
		return err
	}
	defer closer()

	deviceName := inv.String("device")
	d, ok := r.Device(deviceName)
	if !ok {
		return fmt.Errorf("no device named %q", deviceName)
	}
	p, ok := d.Parameter(inv.String("param"))
	if !ok {
		return fmt.Errorf("device %q has no parameter %q", deviceName, inv.String("param"))
	}

	value := inv.Float("value")
	d.Lock()
	err = p.Set(value)
	d.Unlock()
	if err != nil {
		return err
	}

	current, err := p.Get()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.outW, "%s.%s = %g %s\n", deviceName, p.Name, current, p.Unit)
	return nil
}

func (s *Service) move(ctx context.Context, inv *command.Invocation) error {
	r, closer, err := s.openRig(ctx, inv.String("rig"), false)
	if err != nil {
		return err
	}
	defer closer()

	m, err := r.Motor(inv.String("device"))
	if err != nil {
		return err
	}

	m.Lock()
	err = m.Move(inv.Float("delta"))
	m.Unlock()
	if err != nil {
		return err
	}

	position, err := m.Position()
	if err != nil {
		return err
	}
	p, _ := m.Parameter("position")
	fmt.Fprintf(s.outW, "%s.position = %g %s\n", m.Name(), position, p.Unit)
	return nil
}

func (s *Service) home(ctx context.Context, inv *command.Invocation) error {
	r, closer, err := s.openRig(ctx, inv.String("rig"), false)
	if err != nil {
		return err
	}
	defer closer()

	m, err := r.Motor(inv.String("device"))
	if err != nil {
		return err
	}

	m.Lock()
	defer m.Unlock()
	if err := m.Home(); err != nil {
		return err
	}
	fmt.Fprintf(s.outW, "%s homed\n", m.Name())
	return nil
}

func (s *Service) shutterAction(ctx context.Context, inv *command.Invocation) error {
	r, closer, err := s.openRig(ctx, inv.String("rig"), false)
	if err != nil {
		return err
	}
	defer closer()

	sh, err := r.Shutter(inv.String("device"))
	if err != nil {
		return err
	}

	sh.Lock()
	defer sh.Unlock()
	switch action := inv.String("action"); action {
	case "open":
		err = sh.Open(ctx)
	case "close":
		err = sh.Close(ctx)
	default:
		return fmt.Errorf("unknown action %q: must be 'open' or 'close'", action)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(s.outW, "%s: %s\n", sh.Name(), sh.State())
	return nil
}

func (s *Service) focus(ctx context.Context, inv *command.Invocation) error {
	r, closer, err := s.openRig(ctx, inv.String("rig"), false)
	if err != nil {
		return err
	}
	defer closer()

	m, err := r.Motor(inv.String("device"))
	if err != nil {
		return err
	}
	p, _ := m.Parameter("position")
	measure := focus.NewDummyGradientMeasure(p, inv.Float("peak"))

	m.Lock()
	err = focus.New(m, inv.Float("epsilon"), measure).Focus(ctx, inv.Float("step"))
	m.Unlock()
	if err != nil {
		return err
	}

	position, err := m.Position()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.outW, "%s focused at %g %s\n", m.Name(), position, p.Unit)
	return nil
}

func lookupParameter(r *rig.Rig, deviceName, paramName string) (*device.Parameter, error) {
	d, ok := r.Device(deviceName)
	if !ok {
		return nil, fmt.Errorf("no device named %q", deviceName)
	}
	p, ok := d.Parameter(paramName)
	if !ok {
		return nil, fmt.Errorf("device %q has no parameter %q", deviceName, paramName)
	}
	return p, nil
}
