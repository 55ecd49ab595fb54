package value_test

import (
	"testing"

	"github.com/mna/lumen/lang/value"
	"github.com/stretchr/testify/assert"
)

func TestIsTruthy(t *testing.T) {
	assert.False(t, value.IsTruthy(value.Nil{}))
	assert.False(t, value.IsTruthy(value.Bool(false)))
	assert.True(t, value.IsTruthy(value.Bool(true)))
	assert.True(t, value.IsTruthy(value.Number(0)))
	assert.True(t, value.IsTruthy(value.String("")))
}

func TestEqualAcrossTypes(t *testing.T) {
	assert.True(t, value.Equal(value.Nil{}, value.Nil{}))
	assert.False(t, value.Equal(value.Nil{}, value.Bool(false)))
	assert.False(t, value.Equal(value.Nil{}, value.Number(0)))
	assert.True(t, value.Equal(value.Number(1), value.Number(1)))
	assert.False(t, value.Equal(value.Number(1), value.String("1")))
	assert.True(t, value.Equal(value.String("a"), value.String("a")))
}

func TestNumberString(t *testing.T) {
	assert.Equal(t, "1", value.Number(1).String())
	assert.Equal(t, "1.5", value.Number(1.5).String())
}
