package debug_test

import (
	"bytes"
	"testing"

	"github.com/mna/lumen/lang/chunk"
	"github.com/mna/lumen/lang/compiler"
	"github.com/mna/lumen/lang/debug"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisassembleConsumesExactOperands(t *testing.T) {
	fn, err := compiler.Compile(`var a = 1; print a + 2;`)
	require.NoError(t, err)

	var buf bytes.Buffer
	offset := 0
	for offset < len(fn.Chunk.Code) {
		offset = debug.DisassembleInstruction(&buf, &fn.Chunk, offset)
	}
	assert.Equal(t, len(fn.Chunk.Code), offset)
	assert.NotEmpty(t, buf.String())
}

func TestDisassembleChunkHeader(t *testing.T) {
	var c chunk.Chunk
	c.WriteOpcode(chunk.OpNil, 1)
	c.WriteOpcode(chunk.OpReturn, 1)

	var buf bytes.Buffer
	debug.DisassembleChunk(&buf, &c, "test")
	assert.Contains(t, buf.String(), "== test ==")
	assert.Contains(t, buf.String(), "Nil")
	assert.Contains(t, buf.String(), "Return")
}
