// Package gateway connects to the beamline device gateway over socket.io
// and forwards text commands to it. Remote device drivers share one client
// per rig.
package gateway

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/beamkit/beamctl/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// connectTimeout bounds the initial handshake.
const connectTimeout = 15 * time.Second

// Config describes how to reach the gateway.
type Config struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
}

// Client is a connected gateway client.
type Client struct {
	io *socket.Socket
}

// Connect dials the gateway and waits for the socket.io handshake to
// complete, the context to be cancelled, or the timeout to expire.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	logger := ctxlog.FromContext(ctx).With("gateway", cfg.URL)
	logger.Info("Connecting to device gateway...")

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gateway URL: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Gateway connected", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		connectChan <- errs[0].(error)
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("gateway connection failed: %w", err)
		}
		return &Client{io: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while connecting to gateway: %w", ctx.Err())
	case <-time.After(connectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for gateway connection", connectTimeout)
	}
}

// Command emits one text command to the gateway.
func (c *Client) Command(ctx context.Context, text string) error {
	ctxlog.FromContext(ctx).Debug("Sending gateway command.", "command", text)
	return c.io.Emit("command", text)
}

// Close disconnects from the gateway.
func (c *Client) Close() error {
	c.io.Disconnect()
	return nil
}
