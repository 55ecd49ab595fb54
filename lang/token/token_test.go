package token_test

import (
	"testing"

	"github.com/mna/lumen/lang/token"
	"github.com/stretchr/testify/assert"
)

func TestLookupKeyword(t *testing.T) {
	assert.Equal(t, token.AND, token.Lookup("and"))
	assert.Equal(t, token.WHILE, token.Lookup("while"))
	assert.Equal(t, token.CLASS, token.Lookup("class"))
}

func TestLookupIdentifier(t *testing.T) {
	assert.Equal(t, token.IDENTIFIER, token.Lookup("andy"))
	assert.Equal(t, token.IDENTIFIER, token.Lookup("foobar"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "+", token.PLUS.String())
	assert.Equal(t, "and", token.AND.String())
	assert.Equal(t, "end of file", token.EOF.String())
}

func TestKindGoStringQuotesPunctuation(t *testing.T) {
	assert.Equal(t, "'+'", token.PLUS.GoString())
	assert.Equal(t, "and", token.AND.GoString())
}
