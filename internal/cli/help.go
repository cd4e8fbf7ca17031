package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/beamkit/beamctl/internal/command"
)

// Summary extracts the help line for a command from its doc string: the
// text up to and including the first period. Without a period the whole
// string is returned; an empty doc yields an empty summary. It never fails.
func Summary(doc string) string {
	doc = strings.TrimSpace(doc)
	if i := strings.IndexByte(doc, '.'); i >= 0 {
		return doc[:i+1]
	}
	return doc
}

// printHelp writes the full top-level help text: a usage line, the command
// list in registration order with each command's doc summary, and the
// global options.
func (d *Dispatcher) printHelp(w io.Writer) {
	fmt.Fprintf(w, `%s - command-line control for beamline hardware rigs.

Usage:
  %s [options] <command> [command options]

Commands:
`, d.name, d.name)

	names := d.reg.Names()
	width := 0
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}
	for _, name := range names {
		entry, _ := d.reg.Lookup(name)
		summary := Summary(entry.Doc)
		if summary == "" {
			fmt.Fprintf(w, "  %s\n", name)
			continue
		}
		fmt.Fprintf(w, "  %-*s  %s\n", width, name, summary)
	}

	fmt.Fprint(w, `
Options:
  -version
        Print the version and exit.
  -log-level string
        Logging level: 'debug', 'info', 'warn', or 'error'. (default "info")
  -log-format string
        Log output format: 'text' or 'json'. (default "text")

Run '`+d.name+` <command> -h' for details on a command.
`)
}

// printCommandHelp writes the usage text of a single command.
func (d *Dispatcher) printCommandHelp(w io.Writer, entry *command.Entry, fs *flag.FlagSet) {
	fmt.Fprintf(w, "Usage:\n  %s %s [options]\n", d.name, entry.Name)
	if summary := Summary(entry.Doc); summary != "" {
		fmt.Fprintf(w, "\n%s\n", summary)
	}
	if len(entry.Flags) > 0 {
		fmt.Fprint(w, "\nOptions:\n")
		fs.PrintDefaults()
	}
}
