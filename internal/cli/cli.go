package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/beamkit/beamctl/internal/command"
	"github.com/beamkit/beamctl/internal/ctxlog"
)

// Globals holds the values of the top-level flags, parsed before the
// subcommand is resolved.
type Globals struct {
	LogLevel  string
	LogFormat string
}

// Prepare lets the caller act on the parsed globals before dispatch,
// typically to install a configured logger into the context.
type Prepare func(ctx context.Context, g Globals) context.Context

// Dispatcher routes one process invocation to the matching registered
// handler. The registry is supplied at construction and never mutated.
type Dispatcher struct {
	name    string
	version string
	reg     *command.Registry
	outW    io.Writer
	errW    io.Writer
	prepare Prepare
}

// New creates a dispatcher over the given registry. prepare may be nil.
func New(name, version string, reg *command.Registry, outW, errW io.Writer, prepare Prepare) *Dispatcher {
	return &Dispatcher{
		name:    name,
		version: version,
		reg:     reg,
		outW:    outW,
		errW:    errW,
		prepare: prepare,
	}
}

// Run parses args and dispatches. A nil return means a clean exit: either a
// handler succeeded, or help/version output was requested. Malformed input
// returns a *UsageError after usage text has been written to the error
// stream; a handler failure returns a *HandlerError wrapping the cause.
func (d *Dispatcher) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		d.printHelp(d.outW)
		return nil
	}

	top := flag.NewFlagSet(d.name, flag.ContinueOnError)
	top.SetOutput(d.errW)
	top.Usage = func() { d.printHelp(d.errW) }
	versionFlag := top.Bool("version", false, "Print the version and exit.")
	logLevelFlag := top.String("log-level", "info", "Logging level: 'debug', 'info', 'warn', or 'error'.")
	logFormatFlag := top.String("log-format", "text", "Log output format: 'text' or 'json'.")

	if err := top.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return &UsageError{Message: err.Error()}
	}

	if *versionFlag {
		fmt.Fprintf(d.outW, "%s v%s\n", d.name, d.version)
		return nil
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return &UsageError{Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return &UsageError{Message: "invalid log-format: must be 'text' or 'json'"}
	}

	if top.NArg() == 0 {
		d.printHelp(d.outW)
		return nil
	}

	if d.prepare != nil {
		ctx = d.prepare(ctx, Globals{LogLevel: logLevel, LogFormat: logFormat})
	}
	logger := ctxlog.FromContext(ctx)

	name := top.Arg(0)
	entry, ok := d.reg.Lookup(name)
	if !ok {
		d.printHelp(d.errW)
		return &UsageError{Message: fmt.Sprintf("unknown command %q", name)}
	}
	logger.Debug("Command resolved.", "command", name)

	sub := flag.NewFlagSet(name, flag.ContinueOnError)
	sub.SetOutput(d.errW)
	sub.Usage = func() { d.printCommandHelp(d.errW, entry, sub) }

	// One destination per flag in the entry's table; the routing key itself
	// is never part of the table.
	dests := make(map[string]any, len(entry.Flags))
	for _, f := range entry.Flags {
		switch f.Kind {
		case command.String:
			dests[f.Name] = sub.String(f.Name, defaultFor[string](f), f.Help)
		case command.Int:
			dests[f.Name] = sub.Int(f.Name, defaultFor[int](f), f.Help)
		case command.Float:
			dests[f.Name] = sub.Float64(f.Name, defaultFor[float64](f), f.Help)
		case command.Bool:
			dests[f.Name] = sub.Bool(f.Name, defaultFor[bool](f), f.Help)
		case command.Duration:
			dests[f.Name] = sub.Duration(f.Name, defaultFor[time.Duration](f), f.Help)
		}
	}

	if err := sub.Parse(top.Args()[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return &UsageError{Message: fmt.Sprintf("command %q: %v", name, err)}
	}

	provided := make(map[string]struct{})
	sub.Visit(func(fl *flag.Flag) {
		provided[fl.Name] = struct{}{}
	})
	for _, f := range entry.Flags {
		if !f.Required {
			continue
		}
		if _, ok := provided[f.Name]; !ok {
			sub.Usage()
			return &UsageError{Message: fmt.Sprintf("command %q: flag -%s is required", name, f.Name)}
		}
	}

	values := make(map[string]any, len(dests))
	for fname, p := range dests {
		switch dest := p.(type) {
		case *string:
			values[fname] = *dest
		case *int:
			values[fname] = *dest
		case *float64:
			values[fname] = *dest
		case *bool:
			values[fname] = *dest
		case *time.Duration:
			values[fname] = *dest
		}
	}

	logger.Debug("Dispatching command.", "command", name)
	if err := entry.Run(ctx, command.NewInvocation(values, provided)); err != nil {
		return &HandlerError{Command: name, Err: err}
	}
	return nil
}

func defaultFor[T any](f command.Flag) T {
	var zero T
	if f.Default == nil {
		return zero
	}
	return f.Default.(T)
}
