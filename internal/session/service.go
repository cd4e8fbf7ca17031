package session

import (
	"context"
	"fmt"
	"io"

	"github.com/beamkit/beamctl/internal/ctxlog"
	"github.com/beamkit/beamctl/internal/device/shutter"
	"github.com/beamkit/beamctl/internal/gateway"
	"github.com/beamkit/beamctl/internal/rig"
)

// GatewayConn is an open connection to the device gateway.
type GatewayConn interface {
	shutter.Commander
	Close() error
}

// Dialer opens a gateway connection. Tests substitute a fake to keep
// invocations off the network.
type Dialer func(ctx context.Context, cfg gateway.Config) (GatewayConn, error)

// Service holds what every session command needs: the output writer for
// command results and the gateway dialer.
type Service struct {
	outW io.Writer

	// Dialer connects to the rig's gateway when one is declared. It
	// defaults to the real socket.io client.
	Dialer Dialer
}

// NewService creates a session service writing results to outW.
func NewService(outW io.Writer) *Service {
	return &Service{
		outW: outW,
		Dialer: func(ctx context.Context, cfg gateway.Config) (GatewayConn, error) {
			return gateway.Connect(ctx, cfg)
		},
	}
}

// openRig loads the rig at path and instantiates its devices. The gateway
// is dialed when the rig needs it for remote devices, or unconditionally
// when always is set (session start wants the connection up even if no
// remote device is declared yet). The returned closer is never nil.
func (s *Service) openRig(ctx context.Context, path string, always bool) (*rig.Rig, func(), error) {
	model, err := rig.Load(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	closer := func() {}
	var commander shutter.Commander
	if model.Gateway != nil && (always || model.HasRemoteShutter()) {
		conn, err := s.Dialer(ctx, gateway.Config{
			URL:                model.Gateway.URL,
			Namespace:          model.Gateway.Namespace,
			InsecureSkipVerify: model.Gateway.InsecureSkipVerify,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("gateway: %w", err)
		}
		commander = conn
		closer = func() {
			if err := conn.Close(); err != nil {
				ctxlog.FromContext(ctx).Warn("Failed to close gateway connection.", "error", err)
			}
		}
	}

	r, err := rig.Build(model, commander)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return r, closer, nil
}
