package machine_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mna/lumen/lang/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) (stdout string, result machine.InterpretResult) {
	t.Helper()
	var out, errBuf bytes.Buffer
	vm := machine.New()
	vm.Stdout = &out
	vm.Stderr = &errBuf
	res := vm.Interpret(src)
	if res != machine.InterpretOK {
		t.Logf("stderr: %s", errBuf.String())
	}
	return out.String(), res
}

func TestEndToEndArithmetic(t *testing.T) {
	out, res := run(t, `print 1 + 2 * 3;`)
	require.Equal(t, machine.InterpretOK, res)
	assert.Equal(t, "7\n", out)
}

func TestEndToEndStringConcat(t *testing.T) {
	out, res := run(t, `var a = "hi "; var b = "there"; print a + b;`)
	require.Equal(t, machine.InterpretOK, res)
	assert.Equal(t, "hi there\n", out)
}

func TestEndToEndForLoop(t *testing.T) {
	out, res := run(t, `var x = 0; for (var i = 0; i < 3; i = i + 1) { x = x + i; } print x;`)
	require.Equal(t, machine.InterpretOK, res)
	assert.Equal(t, "3\n", out)
}

func TestEndToEndClosureCounter(t *testing.T) {
	out, res := run(t, `
		fun make() {
			var n = 0;
			fun inc() {
				n = n + 1;
				return n;
			}
			return inc;
		}
		var c = make();
		print c();
		print c();
		print c();
	`)
	require.Equal(t, machine.InterpretOK, res)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestEndToEndIfElse(t *testing.T) {
	out, res := run(t, `if (1 > 2) print "a"; else print "b";`)
	require.Equal(t, machine.InterpretOK, res)
	assert.Equal(t, "b\n", out)
}

func TestEndToEndClockNative(t *testing.T) {
	out, res := run(t, `print clock() >= 0;`)
	require.Equal(t, machine.InterpretOK, res)
	assert.Equal(t, "true\n", out)
}

func TestRuntimeErrorAddMismatch(t *testing.T) {
	_, res := run(t, `1 + "x";`)
	assert.Equal(t, machine.InterpretRuntimeError, res)
}

func TestRuntimeErrorAddMismatchMessage(t *testing.T) {
	var out, errBuf bytes.Buffer
	vm := machine.New()
	vm.Stdout, vm.Stderr = &out, &errBuf
	res := vm.Interpret(`1 + "x";`)
	require.Equal(t, machine.InterpretRuntimeError, res)
	assert.True(t, strings.Contains(errBuf.String(), "Operands must be two numbers or two strings."))
}

func TestRuntimeErrorUndefinedGlobal(t *testing.T) {
	var out, errBuf bytes.Buffer
	vm := machine.New()
	vm.Stdout, vm.Stderr = &out, &errBuf
	res := vm.Interpret(`undefined_var;`)
	require.Equal(t, machine.InterpretRuntimeError, res)
	assert.True(t, strings.Contains(errBuf.String(), "Undefined variable 'undefined_var'."))
}

func TestCompileErrorResult(t *testing.T) {
	_, res := run(t, `return 1;`)
	assert.Equal(t, machine.InterpretCompileError, res)
}

func TestRecursiveFunctionAndGlobalsPersist(t *testing.T) {
	out, res := run(t, `
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`)
	require.Equal(t, machine.InterpretOK, res)
	assert.Equal(t, "55\n", out)
}

func TestNestedClosuresShareCapture(t *testing.T) {
	out, res := run(t, `
		fun outer() {
			var x = "outside";
			fun middle() {
				fun inner() {
					print x;
				}
				inner();
			}
			middle();
		}
		outer();
	`)
	require.Equal(t, machine.InterpretOK, res)
	assert.Equal(t, "outside\n", out)
}

func TestTruthiness(t *testing.T) {
	out, res := run(t, `
		if (0) print "zero truthy"; else print "zero falsey";
		if ("") print "empty truthy"; else print "empty falsey";
		if (nil) print "nil truthy"; else print "nil falsey";
	`)
	require.Equal(t, machine.InterpretOK, res)
	assert.Equal(t, "zero truthy\nempty truthy\nnil falsey\n", out)
}

func TestNilEqualsOnlyNil(t *testing.T) {
	out, res := run(t, `
		print nil == nil;
		print nil == false;
		print nil == 0;
	`)
	require.Equal(t, machine.InterpretOK, res)
	assert.Equal(t, "true\nfalse\nfalse\n", out)
}
