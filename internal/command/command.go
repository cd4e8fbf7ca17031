package command

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Kind enumerates the value types a flag can carry.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
	Duration
)

// Flag declares one command-line flag of a subcommand. Default may be nil
// for the kind's zero value; when set it must match the kind.
type Flag struct {
	Name     string
	Kind     Kind
	Help     string
	Default  any
	Required bool
}

// Handler executes a subcommand with its parsed invocation.
type Handler func(ctx context.Context, inv *Invocation) error

// Entry binds a subcommand name to its handler and flag table. Doc is the
// handler's documentation; the dispatcher shows its first sentence as the
// command's help line.
type Entry struct {
	Name  string
	Doc   string
	Flags []Flag
	Run   Handler
}

// Registry holds all registered subcommands for one application instance.
// Entries keep their registration order for help output.
type Registry struct {
	entries map[string]*Entry
	order   []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds an entry. It panics on a duplicate command name, a duplicate
// flag name within the entry, or a default value that does not match its
// flag's kind. These are programmer errors in the static command table.
func (r *Registry) Register(e *Entry) {
	if e.Name == "" {
		panic("command: entry has empty name")
	}
	if e.Run == nil {
		panic(fmt.Sprintf("command %q has no handler", e.Name))
	}
	if _, exists := r.entries[e.Name]; exists {
		panic(fmt.Sprintf("command %q already registered", e.Name))
	}
	seen := make(map[string]struct{}, len(e.Flags))
	for _, f := range e.Flags {
		if _, dup := seen[f.Name]; dup {
			panic(fmt.Sprintf("command %q: flag %q declared twice", e.Name, f.Name))
		}
		seen[f.Name] = struct{}{}
		if err := checkDefault(f); err != nil {
			panic(fmt.Sprintf("command %q: %v", e.Name, err))
		}
	}
	slog.Debug("Registering command.", "name", e.Name, "flags", len(e.Flags))
	r.entries[e.Name] = e
	r.order = append(r.order, e.Name)
}

// Lookup returns the entry for name and whether it exists.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names returns the command names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.order)
}

func checkDefault(f Flag) error {
	if f.Default == nil {
		return nil
	}
	var ok bool
	switch f.Kind {
	case String:
		_, ok = f.Default.(string)
	case Int:
		_, ok = f.Default.(int)
	case Float:
		_, ok = f.Default.(float64)
	case Bool:
		_, ok = f.Default.(bool)
	case Duration:
		_, ok = f.Default.(time.Duration)
	}
	if !ok {
		return fmt.Errorf("flag %q: default %v does not match its kind", f.Name, f.Default)
	}
	return nil
}
