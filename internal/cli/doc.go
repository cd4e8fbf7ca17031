// Package cli is responsible for parsing command-line arguments, routing a
// subcommand to its registered handler, and handling process-level concerns
// like exit codes. The grammar is generated from the command registry: one
// flag set per registry entry, built from that entry's declarative flag
// table.
package cli
