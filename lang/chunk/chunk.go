// Package chunk implements the bytecode chunk: the flat byte-code buffer,
// its constant pool and its source-line map, plus the compile-time Function
// object the compiler builds one chunk into.
package chunk

import (
	"fmt"

	"github.com/mna/lumen/lang/value"
)

// maxConstants is the limit imposed by using a single byte to index the
// constant pool.
const maxConstants = 256

// Chunk holds one function's compiled bytecode: an ordered byte sequence, a
// constant pool indexed by a single byte, and a line number parallel to each
// byte of code, used only for diagnostics.
type Chunk struct {
	Code      []byte
	Constants []value.Value
	Lines     []int
}

// Write appends a single byte of code, recording the source line it came
// from. It is used both for opcodes and for raw operand bytes, so that
// Lines stays exactly as long as Code.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// WriteOpcode is a typed convenience wrapper over Write.
func (c *Chunk) WriteOpcode(op Opcode, line int) {
	c.Write(byte(op), line)
}

// AddConstant appends v to the constant pool and returns its index. Constants
// are never deduplicated: two equal literals occupy two slots.
func (c *Chunk) AddConstant(v value.Value) (int, error) {
	if len(c.Constants) >= maxConstants {
		return 0, fmt.Errorf("too many constants in one chunk")
	}
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1, nil
}

// Function is a compiled function: its own chunk, its declared name and
// arity, and the number of upvalues its closures must capture. Function
// values are created once at compile time and never mutated after their
// chunk is finalized; multiple Closures may share the same Function.
type Function struct {
	Name         string
	Arity        int
	UpvalueCount int
	Chunk        Chunk
}

var _ value.Value = (*Function)(nil)
var _ value.Equatable = (*Function)(nil)

func (f *Function) String() string {
	if f.Name == "" {
		return "<script>"
	}
	return fmt.Sprintf("<fn %s>", f.Name)
}

func (f *Function) Type() string { return "function" }

func (f *Function) EqualValue(other value.Value) bool {
	o, ok := other.(*Function)
	return ok && f == o
}
