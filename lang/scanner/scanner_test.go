package scanner_test

import (
	"testing"

	"github.com/mna/lumen/lang/scanner"
	"github.com/mna/lumen/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	var s scanner.Scanner
	s.Init(src)
	var toks []token.Token
	for {
		tok := s.ScanToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestScanTokenKinds(t *testing.T) {
	toks := scanAll(t, `var a = 1 + 2.5; // comment
print a == "hi";`)

	require.NotEmpty(t, toks)
	kinds := make([]token.Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []token.Kind{
		token.VAR, token.IDENTIFIER, token.EQUAL, token.NUMBER, token.PLUS,
		token.NUMBER, token.SEMICOLON,
		token.PRINT, token.IDENTIFIER, token.EQUAL_EQUAL, token.STRING, token.SEMICOLON,
		token.EOF,
	}, kinds)
}

func TestScanKeywordsVsIdentifiers(t *testing.T) {
	toks := scanAll(t, "forest fortune for")
	require.Len(t, toks, 4)
	assert.Equal(t, token.IDENTIFIER, toks[0].Kind)
	assert.Equal(t, token.IDENTIFIER, toks[1].Kind)
	assert.Equal(t, token.FOR, toks[2].Kind)
}

func TestScanUnterminatedString(t *testing.T) {
	toks := scanAll(t, `"unterminated`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.ILLEGAL, toks[0].Kind)
	assert.Equal(t, "Unterminated string.", toks[0].Lexeme)
}

func TestScanMultilineString(t *testing.T) {
	toks := scanAll(t, "\"line1\nline2\"\nprint 1;")
	require.Len(t, toks, 5)
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, 3, toks[1].Line)
}

func TestScanUnknownByte(t *testing.T) {
	toks := scanAll(t, `@`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.ILLEGAL, toks[0].Kind)
}

func TestScanNumberNoTrailingDot(t *testing.T) {
	toks := scanAll(t, "1.")
	require.Len(t, toks, 3)
	assert.Equal(t, token.NUMBER, toks[0].Kind)
	assert.Equal(t, "1", toks[0].Lexeme)
	assert.Equal(t, token.DOT, toks[1].Kind)
}

func TestLiteralStripsQuotes(t *testing.T) {
	var s scanner.Scanner
	s.Init(`"hello"`)
	tok := s.ScanToken()
	assert.Equal(t, "hello", scanner.Literal(tok))
}
