package compiler

import (
	"fmt"
	"strings"
)

// CompileError is a single diagnostic produced while compiling: the line on
// which it occurred and a human-readable message already formatted with the
// offending token, ready to print as-is.
type CompileError struct {
	Line    int
	Message string
}

func (e *CompileError) Error() string { return e.Message }

// ErrorList collects every CompileError reported during a single compile,
// matching the multi-error shape of golang.org/x/tools' scanner.ErrorList:
// Error() renders the first error followed by a count of the others, and
// callers that want them all can range over Unwrap().
type ErrorList []*CompileError

func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (and %d more errors)", el[0].Error(), len(el)-1)
	return b.String()
}

// Unwrap exposes every collected error for errors.Is/errors.As and for
// callers that want to print each diagnostic individually.
func (el ErrorList) Unwrap() []error {
	errs := make([]error, len(el))
	for i, e := range el {
		errs[i] = e
	}
	return errs
}
