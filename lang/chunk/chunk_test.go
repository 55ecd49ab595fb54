package chunk_test

import (
	"testing"

	"github.com/mna/lumen/lang/chunk"
	"github.com/mna/lumen/lang/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkWriteKeepsLinesInSync(t *testing.T) {
	var c chunk.Chunk
	c.WriteOpcode(chunk.OpConstant, 1)
	c.Write(0, 1)
	c.WriteOpcode(chunk.OpReturn, 2)

	require.Equal(t, len(c.Code), len(c.Lines))
	assert.Equal(t, []int{1, 1, 2}, c.Lines)
}

func TestChunkAddConstant(t *testing.T) {
	var c chunk.Chunk
	idx, err := c.AddConstant(value.Number(42))
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, value.Number(42), c.Constants[0])
}

func TestChunkAddConstantOverflow(t *testing.T) {
	var c chunk.Chunk
	for i := 0; i < 256; i++ {
		_, err := c.AddConstant(value.Number(float64(i)))
		require.NoError(t, err)
	}
	_, err := c.AddConstant(value.Number(256))
	require.Error(t, err)
}

func TestFunctionStringForm(t *testing.T) {
	fn := &chunk.Function{Name: ""}
	assert.Equal(t, "<script>", fn.String())

	fn2 := &chunk.Function{Name: "add"}
	assert.Equal(t, "<fn add>", fn2.String())
}

func TestFunctionEquality(t *testing.T) {
	fn1 := &chunk.Function{Name: "a"}
	fn2 := &chunk.Function{Name: "a"}
	assert.True(t, fn1.EqualValue(fn1))
	assert.False(t, fn1.EqualValue(fn2))
}
