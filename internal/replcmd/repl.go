package replcmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/mna/lumen/lang/compiler"
	"github.com/mna/lumen/lang/debug"
	"github.com/mna/lumen/lang/machine"
	"github.com/mna/mainer"
)

// RunREPL reads statements from stdio.Stdin one at a time, compiling and
// running each on a single long-lived VM so that global declarations and
// native state persist across lines. A line whose brace nesting is still
// open prompts for a continuation line rather than being compiled early.
func RunREPL(_ context.Context, stdio mainer.Stdio, trace bool) mainer.ExitCode {
	vm := machine.New()
	vm.Stdout, vm.Stderr = stdio.Stdout, stdio.Stderr

	scanner := bufio.NewScanner(stdio.Stdin)
	var pending strings.Builder
	depth := 0

	prompt := func() {
		if depth > 0 {
			fmt.Fprint(stdio.Stdout, "...  ")
		} else {
			fmt.Fprint(stdio.Stdout, "lumen> ")
		}
	}

	prompt()
	for scanner.Scan() {
		line := scanner.Text()
		depth += braceDelta(line)
		pending.WriteString(line)
		pending.WriteByte('\n')

		if depth > 0 {
			prompt()
			continue
		}

		src := pending.String()
		pending.Reset()
		depth = 0

		if strings.TrimSpace(src) != "" {
			if trace {
				if fn, err := compiler.Compile(src); err == nil {
					debug.DisassembleChunk(stdio.Stderr, &fn.Chunk, "repl")
				}
			}
			vm.Interpret(src)
		}
		prompt()
	}
	fmt.Fprintln(stdio.Stdout)
	return exitOK
}

// braceDelta reports how much line shifts the REPL's open-brace depth,
// ignoring braces that appear inside a string literal.
func braceDelta(line string) int {
	delta := 0
	inString := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inString = !inString
		case '{':
			if !inString {
				delta++
			}
		case '}':
			if !inString {
				delta--
			}
		}
	}
	return delta
}
