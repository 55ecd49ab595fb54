package compiler

import (
	"github.com/mna/lumen/lang/chunk"
	"github.com/mna/lumen/lang/token"
)

func (c *compiler) beginScope() { c.fs.scopeDepth++ }

// endScope pops every local declared in the scope being exited. A local
// that was captured by a nested closure is closed on the VM's operand stack
// with CloseUpvalue instead of simply popped, so that the closure keeps
// seeing it after the stack slot is gone.
func (c *compiler) endScope() {
	c.fs.scopeDepth--

	locals := c.fs.locals
	for len(locals) > 0 && locals[len(locals)-1].depth > c.fs.scopeDepth {
		if locals[len(locals)-1].isCaptured {
			c.emitOp(chunk.OpCloseUpvalue)
		} else {
			c.emitOp(chunk.OpPop)
		}
		locals = locals[:len(locals)-1]
	}
	c.fs.locals = locals
}

// declareVariable registers name as a new local in the current scope. It is
// a no-op at global scope (scopeDepth == 0), where variables are resolved by
// name in the globals table instead of by slot. Declaring two locals with
// the same name in the same scope is a compile error.
func (c *compiler) declareVariable(name token.Token) {
	if c.fs.scopeDepth == 0 {
		return
	}

	for i := len(c.fs.locals) - 1; i >= 0; i-- {
		l := c.fs.locals[i]
		if l.depth != -1 && l.depth < c.fs.scopeDepth {
			break
		}
		if l.name.Lexeme == name.Lexeme {
			c.error("Already a variable with this name in this scope.")
		}
	}

	if len(c.fs.locals) >= maxLocals {
		c.error("Too many local variables in function.")
		return
	}
	c.fs.locals = append(c.fs.locals, local{name: name, depth: -1})
}

// markInitialized completes the declaration of the most recently added
// local by setting its depth to the current scope depth. For a top-level
// function declaration (scopeDepth == 0) there is no local to mark: the
// function is defined as a global instead.
func (c *compiler) markInitialized() {
	if c.fs.scopeDepth == 0 {
		return
	}
	c.fs.locals[len(c.fs.locals)-1].depth = c.fs.scopeDepth
}

// resolveLocal looks up name among fs's own locals, innermost (most
// recently declared) first. It returns -1 if not found. Finding one whose
// depth is still -1 is a use of a local within its own initializer, an
// error the caller reports.
func resolveLocal(fs *funcState, name string) int {
	for i := len(fs.locals) - 1; i >= 0; i-- {
		if fs.locals[i].name.Lexeme == name {
			return i
		}
	}
	return -1
}

// addUpvalue records that the function being compiled (fs) captures, at
// index/isLocal, a variable from its immediately enclosing function. Upvalue
// descriptors are deduplicated: capturing the same variable twice returns
// the existing index.
func addUpvalue(fs *funcState, index uint8, isLocal bool) int {
	for i, uv := range fs.upvalues {
		if uv.index == index && uv.isLocal == isLocal {
			return i
		}
	}
	if len(fs.upvalues) >= maxUpvalues {
		return -1
	}
	fs.upvalues = append(fs.upvalues, upvalueRef{index: index, isLocal: isLocal})
	return len(fs.upvalues) - 1
}

// resolveUpvalue resolves name as an upvalue of fs: a variable declared in
// some function lexically enclosing fs. It walks the enclosing chain,
// marking the captured local as isCaptured so the VM knows to close it when
// its scope exits, and adds a chained upvalue descriptor in every
// intermediate function along the way.
func resolveUpvalue(fs *funcState, name string) int {
	if fs.enclosing == nil {
		return -1
	}

	if slot := resolveLocal(fs.enclosing, name); slot != -1 {
		fs.enclosing.locals[slot].isCaptured = true
		return addUpvalue(fs, uint8(slot), true)
	}

	if uv := resolveUpvalue(fs.enclosing, name); uv != -1 {
		return addUpvalue(fs, uint8(uv), false)
	}

	return -1
}
