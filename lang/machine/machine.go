// Package machine implements the stack-based virtual machine that executes
// the bytecode produced by the compiler package: instruction dispatch, the
// operand stack, call frames, globals and upvalue closing.
package machine

import (
	"fmt"
	"io"
	"os"

	"github.com/mna/lumen/lang/chunk"
	"github.com/mna/lumen/lang/compiler"
	"github.com/mna/lumen/lang/value"
)

// maxFrames bounds call-frame depth, and therefore recursion depth.
const maxFrames = 64

// stackMax is the operand stack's soft maximum: call depth 64 × a modest
// local count per frame.
const stackMax = maxFrames * 8

// VM executes compiled bytecode. Stdout receives Print output, Stderr
// receives compile and runtime diagnostics; both default to os.Stdout and
// os.Stderr when nil. A VM's globals persist for its lifetime: create a new
// VM for a fresh globals table.
type VM struct {
	Stdout io.Writer
	Stderr io.Writer

	globals *Globals
	stack   []value.Value
	frames  []CallFrame
	open    openUpvalues
}

// New returns a VM with an empty globals table and the clock() native
// function registered.
func New() *VM {
	vm := &VM{globals: NewGlobals()}
	vm.defineNatives()
	return vm
}

func (vm *VM) stdout() io.Writer {
	if vm.Stdout != nil {
		return vm.Stdout
	}
	return os.Stdout
}

func (vm *VM) stderr() io.Writer {
	if vm.Stderr != nil {
		return vm.Stderr
	}
	return os.Stderr
}

// Interpret compiles and runs source, writing Print output to vm.Stdout and
// any diagnostics to vm.Stderr.
func (vm *VM) Interpret(source string) InterpretResult {
	fn, err := compiler.Compile(source)
	if err != nil {
		if el, ok := err.(compiler.ErrorList); ok {
			for _, e := range el {
				fmt.Fprintln(vm.stderr(), e.Error())
			}
		} else {
			fmt.Fprintln(vm.stderr(), err.Error())
		}
		return InterpretCompileError
	}

	closure := &Closure{Function: fn}
	vm.stack = append(vm.stack, closure)
	vm.frames = append(vm.frames, CallFrame{closure: closure, ip: 0, slotBase: 0})

	if rerr := vm.run(); rerr != nil {
		fmt.Fprintln(vm.stderr(), rerr.Error())
		vm.stack = nil
		vm.frames = nil
		return InterpretRuntimeError
	}
	return InterpretOK
}

func (vm *VM) frame() *CallFrame { return &vm.frames[len(vm.frames)-1] }

func (vm *VM) push(v value.Value) { vm.stack = append(vm.stack, v) }

func (vm *VM) pop() value.Value {
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[len(vm.stack)-1-distance]
}

func (vm *VM) readByte() byte {
	fr := vm.frame()
	b := fr.closure.Function.Chunk.Code[fr.ip]
	fr.ip++
	return b
}

func (vm *VM) readShort() int {
	hi := vm.readByte()
	lo := vm.readByte()
	return int(hi)<<8 | int(lo)
}

func (vm *VM) readConstant() value.Value {
	idx := vm.readByte()
	return vm.frame().closure.Function.Chunk.Constants[idx]
}

func (vm *VM) readString() string {
	return string(vm.readConstant().(value.String))
}

// run is the bytecode dispatch loop. It returns a *RuntimeError on failure,
// consuming exactly the stack effect and operand bytes §4.4 specifies for
// each opcode, and nil once the outermost frame's Return instruction has
// executed.
func (vm *VM) run() *RuntimeError {
	for {
		op := chunk.Opcode(vm.readByte())

		switch op {
		case chunk.OpConstant:
			vm.push(vm.readConstant())

		case chunk.OpNil:
			vm.push(value.Nil{})
		case chunk.OpTrue:
			vm.push(value.Bool(true))
		case chunk.OpFalse:
			vm.push(value.Bool(false))

		case chunk.OpPop:
			vm.pop()

		case chunk.OpGetLocal:
			slot := vm.readByte()
			vm.push(vm.stack[vm.frame().slotBase+int(slot)])

		case chunk.OpSetLocal:
			slot := vm.readByte()
			vm.stack[vm.frame().slotBase+int(slot)] = vm.peek(0)

		case chunk.OpGetGlobal:
			name := vm.readString()
			v, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name)
			}
			vm.push(v)

		case chunk.OpDefineGlobal:
			name := vm.readString()
			vm.globals.Set(name, vm.pop())

		case chunk.OpSetGlobal:
			name := vm.readString()
			if !vm.globals.Assign(name, vm.peek(0)) {
				return vm.runtimeError("Undefined variable '%s'.", name)
			}

		case chunk.OpGetUpvalue:
			idx := vm.readByte()
			vm.push(vm.readUpvalue(vm.frame().closure.Upvalues[idx]))

		case chunk.OpSetUpvalue:
			idx := vm.readByte()
			vm.writeUpvalue(vm.frame().closure.Upvalues[idx], vm.peek(0))

		case chunk.OpEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))

		case chunk.OpGreater, chunk.OpLess:
			if err := vm.binaryCompare(op); err != nil {
				return err
			}

		case chunk.OpAdd:
			if err := vm.add(); err != nil {
				return err
			}
		case chunk.OpSubtract, chunk.OpMultiply, chunk.OpDivide:
			if err := vm.binaryArith(op); err != nil {
				return err
			}

		case chunk.OpNot:
			vm.push(value.Bool(!value.IsTruthy(vm.pop())))

		case chunk.OpNegate:
			n, ok := vm.peek(0).(value.Number)
			if !ok {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.pop()
			vm.push(-n)

		case chunk.OpPrint:
			fmt.Fprintln(vm.stdout(), vm.pop().String())

		case chunk.OpJump:
			offset := vm.readShort()
			vm.frame().ip += offset

		case chunk.OpJumpIfFalse:
			offset := vm.readShort()
			if !value.IsTruthy(vm.peek(0)) {
				vm.frame().ip += offset
			}

		case chunk.OpLoop:
			offset := vm.readShort()
			vm.frame().ip -= offset

		case chunk.OpCall:
			argCount := int(vm.readByte())
			if err := vm.callValue(vm.peek(argCount), argCount); err != nil {
				return err
			}

		case chunk.OpClosure:
			fn := vm.readConstant().(*chunk.Function)
			cl := &Closure{Function: fn, Upvalues: make([]*Upvalue, fn.UpvalueCount)}
			for i := 0; i < fn.UpvalueCount; i++ {
				isLocal := vm.readByte()
				index := int(vm.readByte())
				if isLocal != 0 {
					cl.Upvalues[i] = vm.open.captureUpvalue(vm.frame().slotBase + index)
				} else {
					cl.Upvalues[i] = vm.frame().closure.Upvalues[index]
				}
			}
			vm.push(cl)

		case chunk.OpCloseUpvalue:
			vm.open.closeUpvaluesFrom(len(vm.stack)-1, vm.stack)
			vm.pop()

		case chunk.OpReturn:
			result := vm.pop()
			finishedFrame := vm.frame()
			vm.open.closeUpvaluesFrom(finishedFrame.slotBase, vm.stack)

			vm.frames = vm.frames[:len(vm.frames)-1]
			vm.stack = vm.stack[:finishedFrame.slotBase]

			if len(vm.frames) == 0 {
				return nil
			}
			vm.push(result)

		default:
			return vm.runtimeError("Unknown opcode %s.", op)
		}
	}
}

func (vm *VM) readUpvalue(uv *Upvalue) value.Value {
	if uv.isOpen() {
		return vm.stack[uv.slot]
	}
	return *uv.closed
}

func (vm *VM) writeUpvalue(uv *Upvalue, v value.Value) {
	if uv.isOpen() {
		vm.stack[uv.slot] = v
		return
	}
	*uv.closed = v
}

func (vm *VM) add() *RuntimeError {
	b, a := vm.peek(0), vm.peek(1)
	switch a := a.(type) {
	case value.Number:
		b, ok := b.(value.Number)
		if !ok {
			return vm.runtimeError("Operands must be two numbers or two strings.")
		}
		vm.pop()
		vm.pop()
		vm.push(a + b)
		return nil
	case value.String:
		b, ok := b.(value.String)
		if !ok {
			return vm.runtimeError("Operands must be two numbers or two strings.")
		}
		vm.pop()
		vm.pop()
		vm.push(a + b)
		return nil
	default:
		return vm.runtimeError("Operands must be two numbers or two strings.")
	}
}

func (vm *VM) binaryArith(op chunk.Opcode) *RuntimeError {
	bn, bok := vm.peek(0).(value.Number)
	an, aok := vm.peek(1).(value.Number)
	if !aok || !bok {
		return vm.runtimeError("Operands must be numbers.")
	}
	vm.pop()
	vm.pop()
	switch op {
	case chunk.OpSubtract:
		vm.push(an - bn)
	case chunk.OpMultiply:
		vm.push(an * bn)
	case chunk.OpDivide:
		vm.push(an / bn)
	}
	return nil
}

func (vm *VM) binaryCompare(op chunk.Opcode) *RuntimeError {
	bn, bok := vm.peek(0).(value.Number)
	an, aok := vm.peek(1).(value.Number)
	if !aok || !bok {
		return vm.runtimeError("Operands must be numbers.")
	}
	vm.pop()
	vm.pop()
	if op == chunk.OpGreater {
		vm.push(value.Bool(an > bn))
	} else {
		vm.push(value.Bool(an < bn))
	}
	return nil
}

// callValue implements the Call instruction's dispatch over the three
// callable kinds: *Closure, NativeFunction, or anything else (an error).
func (vm *VM) callValue(callee value.Value, argCount int) *RuntimeError {
	switch callee := callee.(type) {
	case *Closure:
		return vm.callClosure(callee, argCount)
	case NativeFunction:
		args := append([]value.Value(nil), vm.stack[len(vm.stack)-argCount:]...)
		result, err := callee.Fn(args)
		if err != nil {
			return vm.runtimeError("%s", err.Error())
		}
		vm.stack = vm.stack[:len(vm.stack)-argCount-1]
		vm.push(result)
		return nil
	default:
		return vm.runtimeError("Can only call functions and classes.")
	}
}

func (vm *VM) callClosure(closure *Closure, argCount int) *RuntimeError {
	if argCount != closure.Function.Arity {
		return vm.runtimeError("Expected %d arguments but got %d.", closure.Function.Arity, argCount)
	}
	if len(vm.frames) >= maxFrames {
		return vm.runtimeError("Stack overflow.")
	}
	vm.frames = append(vm.frames, CallFrame{
		closure:  closure,
		ip:       0,
		slotBase: len(vm.stack) - argCount - 1,
	})
	return nil
}

// runtimeError builds a *RuntimeError carrying the current call-frame
// stack, innermost frame first, matching spec's diagnostic format.
func (vm *VM) runtimeError(format string, args ...any) *RuntimeError {
	re := &RuntimeError{Message: fmt.Sprintf(format, args...)}
	for i := len(vm.frames) - 1; i >= 0; i-- {
		fr := &vm.frames[i]
		fn := fr.closure.Function
		line := 0
		if fr.ip-1 >= 0 && fr.ip-1 < len(fn.Chunk.Lines) {
			line = fn.Chunk.Lines[fr.ip-1]
		}
		name := "script"
		if fn.Name != "" {
			name = fn.Name + "()"
		}
		re.Trace = append(re.Trace, TraceFrame{Line: line, Name: name})
	}
	return re
}
