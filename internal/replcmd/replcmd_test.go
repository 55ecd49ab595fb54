package replcmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/lumen/internal/replcmd"
	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFileSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.lumen")
	require.NoError(t, os.WriteFile(path, []byte(`print 1 + 1;`), 0o644))

	var out, errBuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errBuf}
	code := replcmd.RunFile(nil, stdio, path, false)
	assert.Equal(t, mainer.ExitCode(0), code)
	assert.Equal(t, "2\n", out.String())
}

func TestRunFileCompileError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.lumen")
	require.NoError(t, os.WriteFile(path, []byte(`return 1;`), 0o644))

	var out, errBuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errBuf}
	code := replcmd.RunFile(nil, stdio, path, false)
	assert.Equal(t, mainer.ExitCode(65), code)
}

func TestRunFileRuntimeError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.lumen")
	require.NoError(t, os.WriteFile(path, []byte(`1 + "x";`), 0o644))

	var out, errBuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errBuf}
	code := replcmd.RunFile(nil, stdio, path, false)
	assert.Equal(t, mainer.ExitCode(70), code)
}

func TestRunFileMissingPath(t *testing.T) {
	var out, errBuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errBuf}
	code := replcmd.RunFile(nil, stdio, filepath.Join(t.TempDir(), "missing.lumen"), false)
	assert.Equal(t, mainer.ExitCode(74), code)
}

func TestRunREPLExecutesStatements(t *testing.T) {
	in := bytes.NewBufferString("var a = 1;\nprint a + 2;\n")
	var out, errBuf bytes.Buffer
	stdio := mainer.Stdio{Stdin: in, Stdout: &out, Stderr: &errBuf}

	replcmd.RunREPL(nil, stdio, false)
	assert.Contains(t, out.String(), "3\n")
}

func TestRunREPLHandlesMultilineBlock(t *testing.T) {
	in := bytes.NewBufferString("fun f() {\nprint 1;\n}\nf();\n")
	var out, errBuf bytes.Buffer
	stdio := mainer.Stdio{Stdin: in, Stdout: &out, Stderr: &errBuf}

	replcmd.RunREPL(nil, stdio, false)
	assert.Contains(t, out.String(), "1\n")
}
