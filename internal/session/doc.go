// Package session implements the CLI's session commands: the handlers the
// dispatcher routes to. Each invocation loads the rig named by its -rig
// flag, acts on the declared devices, and writes human-readable results to
// the service's output writer.
package session
