// Package replcmd implements the lumen command line: running a script file
// or, with no arguments, an interactive read-eval-print loop.
package replcmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

const binName = "lumen"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<path>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<path>]
       %[1]s -h|--help
       %[1]s -v|--version

Compiler and virtual machine for the lumen scripting language.

With no <path>, starts an interactive prompt that reads, compiles and
runs one statement at a time. With <path>, compiles and runs the named
script file.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --trace                   Disassemble the top-level chunk before running it.
`, binName)
)

// Exit codes follow the Unix sysexits.h convention the core's CLI contract
// specifies: a successful run is 0, a compile-time failure is EX_DATAERR, a
// runtime failure is EX_SOFTWARE, and a script that can't be read is
// EX_IOERR.
const (
	exitOK      mainer.ExitCode = 0
	exitDataErr mainer.ExitCode = 65
	exitSoftErr mainer.ExitCode = 70
	exitIOErr   mainer.ExitCode = 74
)

// Cmd is the lumen command, driven by github.com/mna/mainer's flag parser.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`
	Trace   bool `flag:"trace"`

	args []string
}

func (c *Cmd) SetArgs(args []string) { c.args = args }
func (c *Cmd) SetFlags(map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) > 1 {
		return errors.New("at most one script path may be given")
	}
	return nil
}

// Main is the entry point github.com/mna/mainer's Cmd contract expects: it
// parses args, dispatches to RunFile or RunREPL, and maps the
// result onto the core's exit code contract.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return exitDataErr
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return exitOK
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return exitOK
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)

	if len(c.args) == 1 {
		return RunFile(ctx, stdio, c.args[0], c.Trace)
	}
	return RunREPL(ctx, stdio, c.Trace)
}
