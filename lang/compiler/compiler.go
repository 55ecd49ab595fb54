// Package compiler implements the single-pass Pratt parser and code
// generator: it drives the scanner token by token and emits bytecode
// directly into a chunk.Function, resolving variable scopes, locals and
// closure upvalues in the same forward pass, with no separate AST stage.
package compiler

import (
	"fmt"

	"github.com/mna/lumen/lang/chunk"
	"github.com/mna/lumen/lang/scanner"
	"github.com/mna/lumen/lang/token"
	"github.com/mna/lumen/lang/value"
)

// funcType distinguishes the implicit top-level script function from a
// user-declared one; only the latter may contain a `return` statement.
type funcType int

const (
	typeScript funcType = iota
	typeFunction
)

// maxLocals bounds the number of local variables (including captured ones)
// live at once in a single function, matching the 8-bit operand width of
// GetLocal/SetLocal.
const maxLocals = 256

// maxUpvalues bounds the number of distinct variables a single function may
// capture from its enclosing scopes, matching the 8-bit operand width of
// GetUpvalue/SetUpvalue.
const maxUpvalues = 256

// maxArity bounds both the number of declared parameters and the number of
// arguments at a call site, per spec.
const maxArity = 255

// local describes one lexical local variable during compilation.
type local struct {
	name       token.Token
	depth      int // -1 means declared but not yet initialized
	isCaptured bool
}

// upvalueRef is one entry in a function's upvalue table: which slot it
// refers to (in the enclosing function's locals if isLocal, else in the
// enclosing function's own upvalues) and whether that slot is local.
type upvalueRef struct {
	index   uint8
	isLocal bool
}

// funcState is the compilation state for one function, chained to the state
// of its lexically enclosing function. The chain is strictly a stack: the
// root has enclosing == nil and corresponds to the top-level script.
type funcState struct {
	enclosing *funcState

	function *chunk.Function
	fnType   funcType

	locals     []local
	upvalues   []upvalueRef
	scopeDepth int
}

// compiler holds the entire state of one compile: the scanner, the
// lookahead tokens, error accumulation, and the stack of funcState values
// for the function currently being compiled and all of its lexical
// enclosers.
type compiler struct {
	scanner scanner.Scanner

	current  token.Token
	previous token.Token

	errs      ErrorList
	panicMode bool

	fs *funcState // innermost function currently being compiled
}

// Compile compiles source into the top-level script Function. On failure it
// returns a nil Function and an ErrorList (always non-empty) describing
// every diagnostic collected before synchronization gave up.
func Compile(source string) (*chunk.Function, error) {
	c := &compiler{}
	c.scanner.Init(source)
	c.beginFunction(typeScript, "")

	c.advance()
	for !c.match(token.EOF) {
		c.declaration()
	}
	c.consume(token.EOF, "Expect end of expression.")

	fn, _ := c.endFunction()
	if len(c.errs) > 0 {
		return nil, c.errs
	}
	return fn, nil
}

// --- token stream helpers ---

func (c *compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.scanner.ScanToken()
		if c.current.Kind != token.ILLEGAL {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *compiler) check(kind token.Kind) bool { return c.current.Kind == kind }

func (c *compiler) match(kind token.Kind) bool {
	if !c.check(kind) {
		return false
	}
	c.advance()
	return true
}

func (c *compiler) consume(kind token.Kind, msg string) {
	if c.current.Kind == kind {
		c.advance()
		return
	}
	c.errorAtCurrent(msg)
}

// --- error reporting ---

func (c *compiler) errorAt(tok token.Token, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true

	full := fmt.Sprintf("[line %d] Error", tok.Line)
	if tok.Kind == token.EOF {
		full += " at end"
	} else {
		full += fmt.Sprintf(" at '%s'", tok.Lexeme)
	}
	full += ": " + msg

	c.errs = append(c.errs, &CompileError{Line: tok.Line, Message: full})
}

func (c *compiler) error(msg string)        { c.errorAt(c.previous, msg) }
func (c *compiler) errorAtCurrent(msg string) { c.errorAt(c.current, msg) }

// synchronize discards tokens until it reaches a likely statement boundary,
// so that a single malformed statement doesn't cascade into spurious
// follow-on errors.
func (c *compiler) synchronize() {
	c.panicMode = false

	for c.current.Kind != token.EOF {
		if c.previous.Kind == token.SEMICOLON {
			return
		}
		switch c.current.Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		c.advance()
	}
}

// --- bytecode emission ---

func (c *compiler) chunk() *chunk.Chunk { return &c.fs.function.Chunk }

func (c *compiler) emitByte(b byte) { c.chunk().Write(b, c.previous.Line) }

func (c *compiler) emitOp(op chunk.Opcode) { c.chunk().WriteOpcode(op, c.previous.Line) }

func (c *compiler) emitOps(op1, op2 chunk.Opcode) {
	c.emitOp(op1)
	c.emitOp(op2)
}

func (c *compiler) emitOpByte(op chunk.Opcode, operand byte) {
	c.emitOp(op)
	c.emitByte(operand)
}

func (c *compiler) makeConstant(v value.Value) byte {
	idx, err := c.chunk().AddConstant(v)
	if err != nil {
		c.error(err.Error())
		return 0
	}
	return byte(idx)
}

func (c *compiler) emitConstant(v value.Value) {
	c.emitOpByte(chunk.OpConstant, c.makeConstant(v))
}

// emitJump writes op followed by a two-byte placeholder offset and returns
// the offset of the first placeholder byte, to be patched later.
func (c *compiler) emitJump(op chunk.Opcode) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return len(c.chunk().Code) - 2
}

// patchJump backfills the two placeholder bytes at offset with the distance
// from just past them to the current end of code.
func (c *compiler) patchJump(offset int) {
	dist := len(c.chunk().Code) - offset - 2
	if dist > 0xffff {
		c.error("Too much code to jump over.")
		return
	}
	c.chunk().Code[offset] = byte(dist >> 8)
	c.chunk().Code[offset+1] = byte(dist)
}

// emitLoop emits OpLoop with the backward offset that returns ip to
// loopStart once the instruction (and its two operand bytes) have been read.
func (c *compiler) emitLoop(loopStart int) {
	c.emitOp(chunk.OpLoop)
	offset := len(c.chunk().Code) - loopStart + 2
	if offset > 0xffff {
		c.error("Loop body too large.")
		return
	}
	c.emitByte(byte(offset >> 8))
	c.emitByte(byte(offset))
}

// --- function (de)activation ---

func (c *compiler) beginFunction(fnType funcType, name string) {
	fs := &funcState{
		enclosing: c.fs,
		fnType:    fnType,
		function:  &chunk.Function{Name: name},
	}
	c.fs = fs
	// slot 0 of every frame holds the called closure itself.
	c.fs.locals = append(c.fs.locals, local{name: token.Token{Lexeme: ""}, depth: 0})
}

// endFunction finalizes the current function (implicit `nil; return`),
// copies its resolved upvalue count, and pops back to the enclosing
// funcState, returning the finished Function and the upvalue table the
// caller must encode as the Closure instruction's trailer (empty, and
// unused, for the top-level script).
func (c *compiler) endFunction() (*chunk.Function, []upvalueRef) {
	c.emitOp(chunk.OpNil)
	c.emitOp(chunk.OpReturn)

	fn := c.fs.function
	fn.UpvalueCount = len(c.fs.upvalues)
	upvalues := c.fs.upvalues

	c.fs = c.fs.enclosing
	return fn, upvalues
}
