// Package value defines the runtime value representation shared by the
// compiler (constants) and the virtual machine (the operand stack, globals,
// locals and upvalues all hold a value.Value).
package value

import (
	"math"
	"strconv"
)

// Value is the tagged union of every runtime value in the language: Nil,
// Bool, Number, String, and the callable types defined by the chunk and
// machine packages (*chunk.Function, *machine.Closure, machine.NativeFunction).
// There is no interface method set beyond what's needed to print, compare and
// classify a value — arithmetic and call dispatch live in the machine
// package, which type-switches on the concrete type.
type Value interface {
	// String returns the value's display form, as printed by the `print`
	// statement.
	String() string

	// Type returns a short name for the value's runtime type (e.g. "number",
	// "string", "nil").
	Type() string
}

// Equatable is implemented by Value types defined outside this package (the
// callable types) that need a say in their own equality, since this package
// cannot type-switch on types it doesn't know about. Equal falls back to
// false for any pair this package can't classify and that doesn't implement
// Equatable.
type Equatable interface {
	Value
	EqualValue(other Value) bool
}

// Nil is the singular absence-of-value. The zero value of Nil is ready to
// use; there is exactly one Nil value, Nil{}.
type Nil struct{}

func (Nil) String() string { return "nil" }
func (Nil) Type() string   { return "nil" }

// Bool is a boolean value.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (Bool) Type() string { return "bool" }

// Number is an IEEE-754 double-precision float, the language's only numeric
// type.
type Number float64

func (n Number) String() string {
	f := float64(n)
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if math.IsNaN(f) {
		return "nan"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
func (Number) Type() string { return "number" }

// String is an immutable sequence of bytes. Go's native string type already
// has value semantics and is immutable, so it is reused directly rather than
// wrapped, with a defined type to carry the Value methods.
type String string

func (s String) String() string { return string(s) }
func (String) Type() string     { return "string" }

// IsTruthy reports the truthiness of a value: Nil and the boolean false are
// falsey, every other value (including the number 0 and the empty string) is
// truthy.
func IsTruthy(v Value) bool {
	switch v := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// Equal reports whether a and b are equal under the language's `==`
// semantics: values of different dynamic types are never equal (including
// Nil, which is equal only to itself), numbers compare by IEEE-754 value,
// strings compare by content, and every callable type (Function, Closure,
// NativeFunction) compares by reference identity via Equatable.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bb, ok := b.(Bool)
		return ok && a == bb
	case Number:
		bb, ok := b.(Number)
		return ok && a == bb
	case String:
		bb, ok := b.(String)
		return ok && a == bb
	}
	if ea, ok := a.(Equatable); ok {
		return ea.EqualValue(b)
	}
	return false
}
