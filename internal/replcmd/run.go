package replcmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/lumen/lang/compiler"
	"github.com/mna/lumen/lang/debug"
	"github.com/mna/lumen/lang/machine"
	"github.com/mna/mainer"
)

// RunFile reads path, optionally disassembles it, then compiles and runs it
// on a fresh VM, returning the exit code the core's CLI contract specifies.
func RunFile(_ context.Context, stdio mainer.Stdio, path string, trace bool) mainer.ExitCode {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
		return exitIOErr
	}

	if trace {
		if fn, cerr := compiler.Compile(string(src)); cerr == nil {
			debug.DisassembleChunk(stdio.Stderr, &fn.Chunk, path)
		}
	}

	vm := machine.New()
	vm.Stdout, vm.Stderr = stdio.Stdout, stdio.Stderr
	switch vm.Interpret(string(src)) {
	case machine.InterpretCompileError:
		return exitDataErr
	case machine.InterpretRuntimeError:
		return exitSoftErr
	default:
		return exitOK
	}
}
