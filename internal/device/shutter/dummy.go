package shutter

import "context"

// DummyDriver is a no-hardware shutter driver.
type DummyDriver struct{}

// Open implements Driver.
func (DummyDriver) Open(ctx context.Context) error {
	return nil
}

// Close implements Driver.
func (DummyDriver) Close(ctx context.Context) error {
	return nil
}

// NewDummy creates a shutter with no hardware attached.
func NewDummy(name string) *Shutter {
	return New(name, DummyDriver{})
}
