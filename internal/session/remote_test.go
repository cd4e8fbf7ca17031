package session

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beamkit/beamctl/internal/command"
	"github.com/beamkit/beamctl/internal/gateway"
)

const remoteRig = `
gateway {
  url       = "https://gw.local:8443"
  namespace = "/beamline"
}

shutter "main" {
  driver = "remote"
  index  = 1
}
`

type fakeConn struct {
	commands []string
	closed   bool
}

func (f *fakeConn) Command(ctx context.Context, text string) error {
	f.commands = append(f.commands, text)
	return nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func writeRemoteRig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "rig.hcl")
	require.NoError(t, os.WriteFile(path, []byte(remoteRig), 0o644))
	return dir
}

func run(t *testing.T, s *Service, name string, values map[string]any) error {
	t.Helper()
	reg := command.New()
	s.Register(reg)
	entry, ok := reg.Lookup(name)
	require.True(t, ok)
	provided := make(map[string]struct{}, len(values))
	for k := range values {
		provided[k] = struct{}{}
	}
	return entry.Run(context.Background(), command.NewInvocation(values, provided))
}

func TestRemoteShutter_DialsAndSendsCommand(t *testing.T) {
	dir := writeRemoteRig(t)
	conn := &fakeConn{}
	var gotCfg gateway.Config

	out := &bytes.Buffer{}
	s := NewService(out)
	s.Dialer = func(ctx context.Context, cfg gateway.Config) (GatewayConn, error) {
		gotCfg = cfg
		return conn, nil
	}

	err := run(t, s, "shutter", map[string]any{
		"rig":    dir,
		"device": "main",
		"action": "open",
	})

	require.NoError(t, err)
	require.Equal(t, "https://gw.local:8443", gotCfg.URL)
	require.Equal(t, "/beamline", gotCfg.Namespace)
	require.Equal(t, []string{"shopen 1"}, conn.commands)
	require.True(t, conn.closed)
	require.Contains(t, out.String(), "main: open")
}

func TestRemoteShutter_DialFailureSurfaces(t *testing.T) {
	dir := writeRemoteRig(t)
	dialErr := errors.New("connection refused")

	s := NewService(&bytes.Buffer{})
	s.Dialer = func(ctx context.Context, cfg gateway.Config) (GatewayConn, error) {
		return nil, dialErr
	}

	err := run(t, s, "shutter", map[string]any{
		"rig":    dir,
		"device": "main",
		"action": "open",
	})

	require.ErrorIs(t, err, dialErr)
}

func TestShow_DoesNotDialWithoutRemoteDevices(t *testing.T) {
	dir := t.TempDir()
	rigSrc := `
gateway {
  url = "https://gw.local:8443"
}

motor "axis" {
  steps_per_unit = 100
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rig.hcl"), []byte(rigSrc), 0o644))

	s := NewService(&bytes.Buffer{})
	s.Dialer = func(ctx context.Context, cfg gateway.Config) (GatewayConn, error) {
		t.Fatal("show must not dial the gateway for a rig without remote devices")
		return nil, nil
	}

	err := run(t, s, "show", map[string]any{"rig": dir, "device": ""})

	require.NoError(t, err)
}

func TestStart_AlwaysDialsDeclaredGateway(t *testing.T) {
	dir := writeRemoteRig(t)
	conn := &fakeConn{}

	s := NewService(&bytes.Buffer{})
	s.Dialer = func(ctx context.Context, cfg gateway.Config) (GatewayConn, error) {
		return conn, nil
	}

	err := run(t, s, "start", map[string]any{"rig": dir, "name": "shift"})

	require.NoError(t, err)
	require.True(t, conn.closed)
}
