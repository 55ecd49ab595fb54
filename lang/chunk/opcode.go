package chunk

import "fmt"

// Increment this to mark an incompatible change in the instruction set; the
// language has no persistent bytecode format, so the constant exists only to
// flag such changes to anyone embedding this package.
const Version = 0

// Opcode identifies a bytecode instruction.
type Opcode byte

// "x OP y" stack pictures describe the operand stack before and after the
// instruction executes. OP<operand> indicates the instruction carries an
// immediate operand in the bytes that follow it in the chunk's code stream.
const ( //nolint:revive
	// stack operations
	OpPop Opcode = iota //   x OpPop -

	// local / global / upvalue access
	OpGetLocal    //       - OpGetLocal<slot>       local
	OpSetLocal    //   value OpSetLocal<slot>       value
	OpGetGlobal   //       - OpGetGlobal<const>      global
	OpDefineGlobal //  value OpDefineGlobal<const>  -
	OpSetGlobal   //   value OpSetGlobal<const>      value
	OpGetUpvalue  //       - OpGetUpvalue<idx>       value
	OpSetUpvalue  //   value OpSetUpvalue<idx>       value

	// literals and constants
	OpConstant //  - OpConstant<const>  value
	OpNil      //  - OpNil              nil
	OpTrue     //  - OpTrue             true
	OpFalse    //  - OpFalse            false

	// comparisons and arithmetic
	OpEqual
	OpGreater
	OpLess
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNot
	OpNegate

	OpPrint

	// control flow (16-bit big-endian operand)
	OpJump        //  - OpJump<off>         -           ip += off
	OpJumpIfFalse //  - OpJumpIfFalse<off>  -            ip += off if falsey(peek())
	OpLoop        //  - OpLoop<off>         -            ip -= off

	OpCall //  fn arg1..argN OpCall<argc>  result

	// closures and upvalues
	OpClosure      //  - OpClosure<const> closure   immediately followed by 2 bytes per upvalue: is_local, index
	OpCloseUpvalue //  x OpCloseUpvalue -

	OpReturn //  value OpReturn  -

	maxOpcode
)

var opcodeNames = [...]string{
	OpPop:          "Pop",
	OpGetLocal:     "GetLocal",
	OpSetLocal:     "SetLocal",
	OpGetGlobal:    "GetGlobal",
	OpDefineGlobal: "DefineGlobal",
	OpSetGlobal:    "SetGlobal",
	OpGetUpvalue:   "GetUpvalue",
	OpSetUpvalue:   "SetUpvalue",
	OpConstant:     "Constant",
	OpNil:          "Nil",
	OpTrue:         "True",
	OpFalse:        "False",
	OpEqual:        "Equal",
	OpGreater:      "Greater",
	OpLess:         "Less",
	OpAdd:          "Add",
	OpSubtract:     "Subtract",
	OpMultiply:     "Multiply",
	OpDivide:       "Divide",
	OpNot:          "Not",
	OpNegate:       "Negate",
	OpPrint:        "Print",
	OpJump:         "Jump",
	OpJumpIfFalse:  "JumpIfFalse",
	OpLoop:         "Loop",
	OpCall:         "Call",
	OpClosure:      "Closure",
	OpCloseUpvalue: "CloseUpvalue",
	OpReturn:       "Return",
}

func (op Opcode) String() string {
	if op >= maxOpcode {
		return fmt.Sprintf("Opcode(%d)", byte(op))
	}
	return opcodeNames[op]
}

// OperandWidth returns the number of immediate operand bytes that follow the
// opcode in the code stream, not counting a Closure instruction's per-upvalue
// trailer (which has variable length driven by the referenced Function's
// UpvalueCount and must be read the same way the compiler wrote it).
func OperandWidth(op Opcode) int {
	switch op {
	case OpGetLocal, OpSetLocal, OpGetGlobal, OpDefineGlobal, OpSetGlobal,
		OpGetUpvalue, OpSetUpvalue, OpConstant, OpCall, OpClosure:
		return 1
	case OpJump, OpJumpIfFalse, OpLoop:
		return 2
	default:
		return 0
	}
}
