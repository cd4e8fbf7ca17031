// Package command defines the registry that maps subcommand names to their
// handlers and declarative flag tables.
//
// The registry is built once at startup and handed to the dispatcher as a
// constructor argument; it is never a package-level singleton. Handlers are
// plain function values resolved by ordinary map lookup, and parsed flag
// values travel in an explicit Invocation rather than any dynamic call
// machinery.
package command
