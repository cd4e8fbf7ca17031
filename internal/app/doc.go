// Package app wires the application together: it builds the command
// registry, configures logging from the parsed global flags, and owns the
// dispatcher. It is decoupled from the process entrypoint so tests can run
// full invocations against in-memory writers.
package app
