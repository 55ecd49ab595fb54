package machine

import (
	"fmt"
	"strings"
)

// RuntimeError is returned by Interpret when execution fails after
// compiling successfully. Error renders the message followed by a
// frame-by-frame stack trace, matching spec's diagnostic format:
// "[line <N>] in <name-or-\"script\">".
type RuntimeError struct {
	Message string
	Trace   []TraceFrame
}

// TraceFrame is one entry of a RuntimeError's stack trace: the source line
// active in that frame when the error occurred, and the frame's function
// name followed by "()" ("script" for the top-level).
type TraceFrame struct {
	Line int
	Name string
}

func (e *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	for _, fr := range e.Trace {
		fmt.Fprintf(&b, "\n[line %d] in %s", fr.Line, fr.Name)
	}
	return b.String()
}
