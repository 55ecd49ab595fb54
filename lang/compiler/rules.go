package compiler

import "github.com/mna/lumen/lang/token"

// Precedence orders binding strength from weakest to strongest, strictly
// ascending as required by the Pratt parser's parsePrecedence loop.
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecAssignment            // =
	PrecOr                    // or
	PrecAnd                   // and
	PrecEquality              // == !=
	PrecComparison            // < > <= >=
	PrecTerm                  // + -
	PrecFactor                // * /
	PrecUnary                 // ! -
	PrecCall                  // . ()
	PrecPrimary
)

// next returns the next-higher precedence, used when compiling the
// right-hand operand of a left-associative binary operator.
func (p Precedence) next() Precedence { return p + 1 }

// parseFn is a prefix or infix parsing function bound to a compiler.
type parseFn func(c *compiler, canAssign bool)

// parseRule is one row of the Pratt parser's rule table: the function to
// call when the token is seen in prefix position, the function to call when
// it's seen in infix position (nil if the token is never infix), and the
// token's infix binding precedence (PrecNone if it is never infix).
type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

var rules = map[token.Kind]parseRule{}

// rule returns the parse rule for kind, or the zero parseRule (no prefix, no
// infix, PrecNone) for any token that never begins or continues an
// expression.
func rule(kind token.Kind) parseRule { return rules[kind] }

func init() {
	rules[token.LEFT_PAREN] = parseRule{prefix: (*compiler).grouping, infix: (*compiler).call, precedence: PrecCall}
	rules[token.MINUS] = parseRule{prefix: (*compiler).unary, infix: (*compiler).binary, precedence: PrecTerm}
	rules[token.PLUS] = parseRule{infix: (*compiler).binary, precedence: PrecTerm}
	rules[token.SLASH] = parseRule{infix: (*compiler).binary, precedence: PrecFactor}
	rules[token.STAR] = parseRule{infix: (*compiler).binary, precedence: PrecFactor}
	rules[token.BANG] = parseRule{prefix: (*compiler).unary}
	rules[token.BANG_EQUAL] = parseRule{infix: (*compiler).binary, precedence: PrecEquality}
	rules[token.EQUAL_EQUAL] = parseRule{infix: (*compiler).binary, precedence: PrecEquality}
	rules[token.GREATER] = parseRule{infix: (*compiler).binary, precedence: PrecComparison}
	rules[token.GREATER_EQUAL] = parseRule{infix: (*compiler).binary, precedence: PrecComparison}
	rules[token.LESS] = parseRule{infix: (*compiler).binary, precedence: PrecComparison}
	rules[token.LESS_EQUAL] = parseRule{infix: (*compiler).binary, precedence: PrecComparison}
	rules[token.NUMBER] = parseRule{prefix: (*compiler).number}
	rules[token.STRING] = parseRule{prefix: (*compiler).string}
	rules[token.NIL] = parseRule{prefix: (*compiler).literal}
	rules[token.TRUE] = parseRule{prefix: (*compiler).literal}
	rules[token.FALSE] = parseRule{prefix: (*compiler).literal}
	rules[token.IDENTIFIER] = parseRule{prefix: (*compiler).variable}
	rules[token.AND] = parseRule{infix: (*compiler).and_, precedence: PrecAnd}
	rules[token.OR] = parseRule{infix: (*compiler).or_, precedence: PrecOr}
}
