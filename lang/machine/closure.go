package machine

import (
	"fmt"

	"github.com/mna/lumen/lang/chunk"
	"github.com/mna/lumen/lang/value"
)

// Closure is the runtime pairing of a compiled Function with the upvalues it
// captured at the point its Closure instruction executed. Closures (not
// bare Functions) are what gets called and what gets pushed onto the
// operand stack; several closures may share the same underlying Function.
type Closure struct {
	Function *chunk.Function
	Upvalues []*Upvalue
}

var (
	_ value.Value     = (*Closure)(nil)
	_ value.Equatable = (*Closure)(nil)
)

func (c *Closure) String() string { return c.Function.String() }
func (c *Closure) Type() string   { return "closure" }

func (c *Closure) EqualValue(other value.Value) bool {
	o, ok := other.(*Closure)
	return ok && c == o
}

// NativeFunction wraps a host-provided callback as a callable Value. Native
// functions receive the slice of arguments already popped off the operand
// stack and return a single result or an error.
type NativeFunction struct {
	Name string
	Fn   func(args []value.Value) (value.Value, error)
}

var (
	_ value.Value     = NativeFunction{}
	_ value.Equatable = NativeFunction{}
)

func (n NativeFunction) String() string { return fmt.Sprintf("<native fn %s>", n.Name) }
func (n NativeFunction) Type() string   { return "native function" }

func (n NativeFunction) EqualValue(other value.Value) bool {
	o, ok := other.(NativeFunction)
	return ok && n.Name == o.Name && fmt.Sprintf("%p", n.Fn) == fmt.Sprintf("%p", o.Fn)
}

// Upvalue is a captured variable cell: Open while it still points into a
// live VM stack slot, Closed once that slot's scope has exited and the
// value has been copied into the cell's own storage.
type Upvalue struct {
	// slot is the absolute VM stack index this upvalue refers to while open.
	// It is meaningless once closed.
	slot int
	// closed holds the value once the upvalue has been closed; closed is nil
	// while the upvalue is open.
	closed *value.Value
}

func (u *Upvalue) isOpen() bool { return u.closed == nil }
