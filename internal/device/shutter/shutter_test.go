package shutter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beamkit/beamctl/internal/device"
)

// fakeCommander records gateway commands.
type fakeCommander struct {
	commands []string
	err      error
}

func (f *fakeCommander) Command(ctx context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.commands = append(f.commands, text)
	return nil
}

func TestDummyShutter_OpenClose(t *testing.T) {
	t.Parallel()
	s := NewDummy("exit")
	ctx := context.Background()

	require.Equal(t, device.StateNA, s.State())

	require.NoError(t, s.Open(ctx))
	require.Equal(t, StateOpen, s.State())
	require.True(t, s.IsOpen())

	require.NoError(t, s.Close(ctx))
	require.Equal(t, StateClosed, s.State())
	require.False(t, s.IsOpen())
}

func TestRemoteShutter_SendsGatewayCommands(t *testing.T) {
	t.Parallel()
	commander := &fakeCommander{}
	s, err := NewRemote("exit", commander, 1)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Open(ctx))
	require.NoError(t, s.Close(ctx))

	require.Equal(t, []string{"shopen 1", "shclose 1"}, commander.commands)
	require.Equal(t, StateClosed, s.State())
}

func TestRemoteShutter_IndexOutOfRange(t *testing.T) {
	t.Parallel()
	for _, index := range []int{-1, 3} {
		_, err := NewRemote("exit", &fakeCommander{}, index)
		require.Error(t, err)
	}
}

func TestRemoteShutter_CommandFailureKeepsState(t *testing.T) {
	t.Parallel()
	boom := errors.New("gateway down")
	s, err := NewRemote("exit", &fakeCommander{err: boom}, 0)
	require.NoError(t, err)

	require.ErrorIs(t, s.Open(context.Background()), boom)
	require.Equal(t, device.StateNA, s.State(), "a failed command must not change the state")
}
