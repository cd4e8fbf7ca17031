package app

import (
	"context"
	"io"

	"github.com/beamkit/beamctl/internal/cli"
	"github.com/beamkit/beamctl/internal/command"
	"github.com/beamkit/beamctl/internal/ctxlog"
	"github.com/beamkit/beamctl/internal/session"
)

// Name is the product name shown in help and version output.
const Name = "beamctl"

// Version is the fixed version string printed by the -version flag.
const Version = "0.4.2"

// App encapsulates the application's dependencies and lifecycle.
type App struct {
	outW       io.Writer
	errW       io.Writer
	registry   *command.Registry
	dispatcher *cli.Dispatcher
}

// New constructs the application: the session command registry is built
// once here and handed to the dispatcher, never stored globally. Command
// output goes to outW; logs and usage errors go to errW.
func New(outW, errW io.Writer) *App {
	reg := command.New()
	session.NewService(outW).Register(reg)

	prepare := func(ctx context.Context, g cli.Globals) context.Context {
		logger := newLogger(g.LogLevel, g.LogFormat, errW)
		return ctxlog.WithLogger(ctx, logger)
	}

	return &App{
		outW:       outW,
		errW:       errW,
		registry:   reg,
		dispatcher: cli.New(Name, Version, reg, outW, errW, prepare),
	}
}

// Registry returns the application's command registry. This is primarily
// for testing.
func (a *App) Registry() *command.Registry {
	return a.registry
}

// Run executes one CLI invocation.
func (a *App) Run(ctx context.Context, args []string) error {
	return a.dispatcher.Run(ctx, args)
}
