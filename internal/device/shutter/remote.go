package shutter

import (
	"context"
	"fmt"
)

// Commander sends a text command to the beamline device gateway.
type Commander interface {
	Command(ctx context.Context, text string) error
}

// RemoteDriver drives one of the gateway's indexed shutters with the
// gateway's shell commands. Valid indexes are 0 through 2.
type RemoteDriver struct {
	commander Commander
	index     int
}

// NewRemoteDriver creates a remote driver for the shutter at index.
func NewRemoteDriver(commander Commander, index int) (*RemoteDriver, error) {
	if index < 0 || index > 2 {
		return nil, fmt.Errorf("shutter index %d: must be in range [0-2]", index)
	}
	return &RemoteDriver{commander: commander, index: index}, nil
}

// Index returns the shutter's index on the gateway.
func (d *RemoteDriver) Index() int {
	return d.index
}

// Open implements Driver.
func (d *RemoteDriver) Open(ctx context.Context) error {
	return d.commander.Command(ctx, fmt.Sprintf("shopen %d", d.index))
}

// Close implements Driver.
func (d *RemoteDriver) Close(ctx context.Context) error {
	return d.commander.Command(ctx, fmt.Sprintf("shclose %d", d.index))
}

// NewRemote creates a shutter driven through the gateway.
func NewRemote(name string, commander Commander, index int) (*Shutter, error) {
	driver, err := NewRemoteDriver(commander, index)
	if err != nil {
		return nil, err
	}
	return New(name, driver), nil
}
