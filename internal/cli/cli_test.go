package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beamkit/beamctl/internal/command"
)

// dispatchRecorder captures what a handler was called with.
type dispatchRecorder struct {
	calls int
	inv   *command.Invocation
	err   error
}

func (r *dispatchRecorder) run(ctx context.Context, inv *command.Invocation) error {
	r.calls++
	r.inv = inv
	return r.err
}

func testRegistry(start, noop, fail *dispatchRecorder) *command.Registry {
	reg := command.New()
	reg.Register(&command.Entry{
		Name: "start",
		Doc:  "Start the session. Extra detail.",
		Flags: []command.Flag{
			{Name: "name", Kind: command.String, Help: "Session name.", Required: true},
			{Name: "count", Kind: command.Int, Help: "Repeat count.", Default: 3},
			{Name: "force", Kind: command.Bool, Help: "Skip confirmation."},
		},
		Run: start.run,
	})
	reg.Register(&command.Entry{
		Name: "noop",
		Doc:  "do nothing at all",
		Run:  noop.run,
	})
	reg.Register(&command.Entry{
		Name: "fail",
		Doc:  "Always fails.",
		Run:  fail.run,
	})
	return reg
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *dispatchRecorder, *dispatchRecorder, *dispatchRecorder, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	start := &dispatchRecorder{}
	noop := &dispatchRecorder{}
	fail := &dispatchRecorder{err: errors.New("boom")}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	d := New("beamctl", "1.2.3", testRegistry(start, noop, fail), out, errOut, nil)
	return d, start, noop, fail, out, errOut
}

func TestRun_NoArgsPrintsHelp(t *testing.T) {
	t.Parallel()
	d, start, noop, fail, out, _ := newTestDispatcher(t)

	err := d.Run(context.Background(), nil)

	require.NoError(t, err)
	require.Contains(t, out.String(), "Usage:")
	require.Contains(t, out.String(), "start")
	require.Zero(t, start.calls+noop.calls+fail.calls, "no handler may run for a bare invocation")
}

func TestRun_VersionFlag(t *testing.T) {
	t.Parallel()
	d, start, noop, fail, out, _ := newTestDispatcher(t)

	err := d.Run(context.Background(), []string{"--version"})

	require.NoError(t, err)
	require.Contains(t, out.String(), "beamctl v1.2.3")
	require.Zero(t, start.calls+noop.calls+fail.calls)
}

func TestRun_DispatchesMatchingHandlerOnce(t *testing.T) {
	t.Parallel()
	d, start, noop, _, _, _ := newTestDispatcher(t)

	err := d.Run(context.Background(), []string{"start", "-name", "x"})

	require.NoError(t, err)
	require.Equal(t, 1, start.calls)
	require.Zero(t, noop.calls)
	require.Equal(t, "x", start.inv.String("name"))
	require.True(t, start.inv.Provided("name"))
}

func TestRun_DefaultsApplyWhenFlagOmitted(t *testing.T) {
	t.Parallel()
	d, start, _, _, _, _ := newTestDispatcher(t)

	err := d.Run(context.Background(), []string{"start", "-name", "x"})

	require.NoError(t, err)
	require.Equal(t, 3, start.inv.Int("count"))
	require.False(t, start.inv.Provided("count"))
	require.False(t, start.inv.Bool("force"))
}

func TestRun_ParsesTypedFlags(t *testing.T) {
	t.Parallel()
	d, start, _, _, _, _ := newTestDispatcher(t)

	err := d.Run(context.Background(), []string{"start", "-name", "x", "-count", "7", "-force"})

	require.NoError(t, err)
	require.Equal(t, 7, start.inv.Int("count"))
	require.True(t, start.inv.Bool("force"))
}

func TestRun_RoutingKeyNeverReachesHandler(t *testing.T) {
	t.Parallel()
	d, start, _, _, _, _ := newTestDispatcher(t)

	require.NoError(t, d.Run(context.Background(), []string{"start", "-name", "x"}))

	require.False(t, start.inv.Provided("start"))
	require.Panics(t, func() { start.inv.String("start") },
		"the routing key must not be part of the invocation")
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()
	d, start, noop, fail, _, errOut := newTestDispatcher(t)

	err := d.Run(context.Background(), []string{"bogus"})

	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)
	require.Contains(t, usageErr.Message, "bogus")
	require.Contains(t, errOut.String(), "Usage:")
	require.Zero(t, start.calls+noop.calls+fail.calls)
}

func TestRun_UnknownFlag(t *testing.T) {
	t.Parallel()
	d, start, _, _, _, _ := newTestDispatcher(t)

	err := d.Run(context.Background(), []string{"start", "-name", "x", "-nope"})

	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)
	require.Zero(t, start.calls)
}

func TestRun_MissingRequiredFlag(t *testing.T) {
	t.Parallel()
	d, start, _, _, _, errOut := newTestDispatcher(t)

	err := d.Run(context.Background(), []string{"start"})

	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)
	require.Contains(t, usageErr.Message, "name")
	require.Contains(t, errOut.String(), "Usage:")
	require.Zero(t, start.calls)
}

func TestRun_BadFlagValueType(t *testing.T) {
	t.Parallel()
	d, start, _, _, _, _ := newTestDispatcher(t)

	err := d.Run(context.Background(), []string{"start", "-name", "x", "-count", "notanint"})

	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)
	require.Zero(t, start.calls)
}

func TestRun_HandlerErrorWrapped(t *testing.T) {
	t.Parallel()
	d, _, _, fail, _, _ := newTestDispatcher(t)

	err := d.Run(context.Background(), []string{"fail"})

	var handlerErr *HandlerError
	require.ErrorAs(t, err, &handlerErr)
	require.Equal(t, "fail", handlerErr.Command)
	require.ErrorIs(t, err, fail.err, "the original failure must survive unwrapping")
	require.Equal(t, 1, fail.calls)
}

func TestRun_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	d, start, _, _, _, _ := newTestDispatcher(t)

	err := d.Run(context.Background(), []string{"-log-level", "loud", "start", "-name", "x"})

	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)
	require.Zero(t, start.calls)
}
