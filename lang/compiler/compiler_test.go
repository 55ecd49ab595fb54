package compiler_test

import (
	"fmt"
	"testing"

	"github.com/mna/lumen/lang/compiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileValidProgram(t *testing.T) {
	fn, err := compiler.Compile(`print 1 + 2 * 3;`)
	require.NoError(t, err)
	require.NotNil(t, fn)
	assert.Equal(t, "", fn.Name)
	assert.Equal(t, 0, fn.Arity)
}

func TestCompileReturnAtTopLevel(t *testing.T) {
	_, err := compiler.Compile(`return 1;`)
	require.Error(t, err)
	el, ok := err.(compiler.ErrorList)
	require.True(t, ok)
	require.Len(t, el, 1)
	assert.Contains(t, el[0].Error(), "Can't return from top-level code.")
}

func TestCompileDuplicateLocal(t *testing.T) {
	_, err := compiler.Compile(`{ var a = 1; var a = 2; }`)
	require.Error(t, err)
	el := err.(compiler.ErrorList)
	require.Len(t, el, 1)
	assert.Contains(t, el[0].Error(), "Already a variable with this name in this scope.")
}

func TestCompileUseBeforeInit(t *testing.T) {
	_, err := compiler.Compile(`{ var a = a; }`)
	require.Error(t, err)
	el := err.(compiler.ErrorList)
	require.Len(t, el, 1)
	assert.Contains(t, el[0].Error(), "Can't read local variable in its own initializer.")
}

func TestCompileInvalidAssignmentTarget(t *testing.T) {
	_, err := compiler.Compile(`a + b = 1;`)
	require.Error(t, err)
	el := err.(compiler.ErrorList)
	require.Len(t, el, 1)
	assert.Contains(t, el[0].Error(), "Invalid assignment target.")
}

func TestCompileMultipleErrorsAccumulate(t *testing.T) {
	_, err := compiler.Compile(`
		return 1;
		{ var x = x; }
	`)
	require.Error(t, err)
	el := err.(compiler.ErrorList)
	// one from the top-level return, one from the self-referential init.
	require.Len(t, el, 2)
}

func TestCompileFunctionArityTooHigh(t *testing.T) {
	src := "fun f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ", "
		}
		src += fmt.Sprintf("p%d", i)
	}
	src += ") {}"

	_, err := compiler.Compile(src)
	require.Error(t, err)
	el := err.(compiler.ErrorList)
	require.Len(t, el, 1)
	assert.Contains(t, el[0].Error(), "Can't have more than 255 parameters.")
}
