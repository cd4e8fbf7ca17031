package focus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beamkit/beamctl/internal/device"
	"github.com/beamkit/beamctl/internal/device/motor"
)

const positionEps = 1e-1

type fixture struct {
	motor   *motor.Motor
	backend *motor.Dummy
	measure *DummyGradientMeasure
	focuser *Focuser
}

func newFixture(t *testing.T, limiter device.Limiter, maxPosition float64) *fixture {
	t.Helper()
	backend := motor.NewDummy()
	m := motor.New("focus_x", "mm", backend, motor.LinearCalibration{StepsPerUnit: 1}, limiter)
	p, ok := m.Parameter("position")
	require.True(t, ok)
	measure := NewDummyGradientMeasure(p, maxPosition)
	return &fixture{
		motor:   m,
		backend: backend,
		measure: measure,
		focuser: New(m, 1e-3, measure),
	}
}

func (f *fixture) position(t *testing.T) float64 {
	t.Helper()
	pos, err := f.motor.Position()
	require.NoError(t, err)
	return pos
}

func TestFocus_MaximumInLimits(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil, 18.75)

	require.NoError(t, f.focuser.Focus(context.Background(), 1))
	require.InDelta(t, f.measure.MaxPosition, f.position(t), positionEps)
}

func TestFocus_HugeStepInLimits(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil, 18.75)

	require.NoError(t, f.focuser.Focus(context.Background(), 1000))
	require.InDelta(t, f.measure.MaxPosition, f.position(t), positionEps)
}

func TestFocus_MaximumOutOfHardLimits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Right.
	f := newFixture(t, nil, 0)
	_, high := f.backend.HardLimits()
	f.measure.MaxPosition = high + 50
	require.NoError(t, f.focuser.Focus(ctx, 1))
	require.InDelta(t, high, f.position(t), positionEps)

	// Left.
	low, _ := f.backend.HardLimits()
	f.measure.MaxPosition = low - 50
	require.NoError(t, f.focuser.Focus(ctx, 1))
	require.InDelta(t, low, f.position(t), positionEps)
}

func TestFocus_MaximumOutOfSoftLimits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Right.
	f := newFixture(t, motor.RangeLimiter(25, 75), 80)
	require.NoError(t, f.motor.SetPosition(50))
	require.NoError(t, f.focuser.Focus(ctx, 10))
	require.InDelta(t, 75, f.position(t), positionEps)

	// Left.
	f = newFixture(t, motor.RangeLimiter(25, 75), 20)
	require.NoError(t, f.motor.SetPosition(50))
	require.NoError(t, f.focuser.Focus(ctx, 10))
	require.InDelta(t, 25, f.position(t), positionEps)
}

func TestFocus_HugeStepOutOfLimits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture(t, nil, 0)
	_, high := f.backend.HardLimits()
	f.measure.MaxPosition = high + 50
	require.NoError(t, f.focuser.Focus(ctx, 1000))
	require.InDelta(t, high, f.position(t), positionEps)

	low, _ := f.backend.HardLimits()
	f.measure.MaxPosition = low - 50
	require.NoError(t, f.focuser.Focus(ctx, 1000))
	require.InDelta(t, low, f.position(t), positionEps)
}

func TestFocus_StartsJustLeftOfZero(t *testing.T) {
	t.Parallel()
	// The same feedback level exists on both sides of the peak; the search
	// must still end at the global maximum.
	f := newFixture(t, nil, 18.75)
	require.NoError(t, f.motor.SetPosition(-0.00001))

	require.NoError(t, f.focuser.Focus(context.Background(), 10))
	require.InDelta(t, f.measure.MaxPosition, f.position(t), positionEps)
}

func TestFocus_RejectsNonPositiveStep(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil, 0)
	require.Error(t, f.focuser.Focus(context.Background(), 0))
}

func TestFocus_HonorsCancellation(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil, 18.75)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, f.focuser.Focus(ctx, 1), context.Canceled)
}
