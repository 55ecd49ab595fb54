package compiler

import (
	"strconv"

	"github.com/mna/lumen/lang/chunk"
	"github.com/mna/lumen/lang/scanner"
	"github.com/mna/lumen/lang/token"
	"github.com/mna/lumen/lang/value"
)

// expression compiles a single expression at the lowest (Assignment)
// precedence, the entry point used by every statement form that contains an
// expression.
func (c *compiler) expression() { c.parsePrecedence(PrecAssignment) }

// parsePrecedence is the heart of the Pratt parser: consume one token,
// invoke its prefix rule, then keep consuming and invoking infix rules as
// long as the next token binds at least as tightly as minPrec.
func (c *compiler) parsePrecedence(minPrec Precedence) {
	c.advance()
	prefix := rule(c.previous.Kind).prefix
	if prefix == nil {
		c.error("Expect expression.")
		return
	}

	canAssign := minPrec <= PrecAssignment
	prefix(c, canAssign)

	for minPrec <= rule(c.current.Kind).precedence {
		c.advance()
		infix := rule(c.previous.Kind).infix
		infix(c, canAssign)
	}

	if canAssign && c.match(token.EQUAL) {
		c.error("Invalid assignment target.")
	}
}

func (c *compiler) number(_ bool) {
	n, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.error("Invalid number literal.")
		return
	}
	c.emitConstant(value.Number(n))
}

func (c *compiler) string(_ bool) {
	c.emitConstant(value.String(scanner.Literal(c.previous)))
}

func (c *compiler) literal(_ bool) {
	switch c.previous.Kind {
	case token.FALSE:
		c.emitOp(chunk.OpFalse)
	case token.TRUE:
		c.emitOp(chunk.OpTrue)
	case token.NIL:
		c.emitOp(chunk.OpNil)
	}
}

func (c *compiler) grouping(_ bool) {
	c.expression()
	c.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
}

func (c *compiler) unary(_ bool) {
	opKind := c.previous.Kind
	c.parsePrecedence(PrecUnary)

	switch opKind {
	case token.MINUS:
		c.emitOp(chunk.OpNegate)
	case token.BANG:
		c.emitOp(chunk.OpNot)
	}
}

func (c *compiler) binary(_ bool) {
	opKind := c.previous.Kind
	c.parsePrecedence(rule(opKind).precedence.next())

	switch opKind {
	case token.PLUS:
		c.emitOp(chunk.OpAdd)
	case token.MINUS:
		c.emitOp(chunk.OpSubtract)
	case token.STAR:
		c.emitOp(chunk.OpMultiply)
	case token.SLASH:
		c.emitOp(chunk.OpDivide)
	case token.EQUAL_EQUAL:
		c.emitOp(chunk.OpEqual)
	case token.BANG_EQUAL:
		c.emitOps(chunk.OpEqual, chunk.OpNot)
	case token.GREATER:
		c.emitOp(chunk.OpGreater)
	case token.GREATER_EQUAL:
		c.emitOps(chunk.OpLess, chunk.OpNot)
	case token.LESS:
		c.emitOp(chunk.OpLess)
	case token.LESS_EQUAL:
		c.emitOps(chunk.OpGreater, chunk.OpNot)
	}
}

func (c *compiler) and_(_ bool) {
	endJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.parsePrecedence(PrecAnd)
	c.patchJump(endJump)
}

func (c *compiler) or_(_ bool) {
	elseJump := c.emitJump(chunk.OpJumpIfFalse)
	endJump := c.emitJump(chunk.OpJump)

	c.patchJump(elseJump)
	c.emitOp(chunk.OpPop)

	c.parsePrecedence(PrecOr)
	c.patchJump(endJump)
}

// call compiles a function call's argument list: `( expr, expr, ... )`.
func (c *compiler) call(_ bool) {
	argCount := c.argumentList()
	c.emitOpByte(chunk.OpCall, argCount)
}

func (c *compiler) argumentList() byte {
	var count int
	if !c.check(token.RIGHT_PAREN) {
		for {
			c.expression()
			if count == maxArity {
				c.error("Can't have more than 255 arguments.")
			}
			count++
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return byte(count)
}

// variable compiles a use of an identifier: a read, or — when canAssign and
// the identifier is immediately followed by '=' — an assignment.
func (c *compiler) variable(canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

func (c *compiler) namedVariable(name token.Token, canAssign bool) {
	var getOp, setOp chunk.Opcode
	var arg byte

	if slot := resolveLocal(c.fs, name.Lexeme); slot != -1 {
		if c.fs.locals[slot].depth == -1 {
			c.error("Can't read local variable in its own initializer.")
		}
		getOp, setOp = chunk.OpGetLocal, chunk.OpSetLocal
		arg = byte(slot)
	} else if uv := resolveUpvalue(c.fs, name.Lexeme); uv != -1 {
		getOp, setOp = chunk.OpGetUpvalue, chunk.OpSetUpvalue
		arg = byte(uv)
	} else {
		getOp, setOp = chunk.OpGetGlobal, chunk.OpSetGlobal
		arg = c.identifierConstant(name)
	}

	if canAssign && c.match(token.EQUAL) {
		c.expression()
		c.emitOpByte(setOp, arg)
	} else {
		c.emitOpByte(getOp, arg)
	}
}

// identifierConstant interns name's lexeme in the current function's
// constant pool, returning its index for use as a GetGlobal/SetGlobal/
// DefineGlobal operand.
func (c *compiler) identifierConstant(name token.Token) byte {
	return c.makeConstant(value.String(name.Lexeme))
}
