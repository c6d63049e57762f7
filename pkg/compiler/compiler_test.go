package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSourceGeneratesHostCode(t *testing.T) {
	out, err := CompileSource(`def square x = x * x`)
	require.NoError(t, err)
	assert.Contains(t, out, "square = (lambda x: (x * x))")
}

func TestCompileSourceRejectsLexError(t *testing.T) {
	_, err := CompileSource("def f x = `")
	require.Error(t, err)
}

func TestCompileSourceRejectsParseError(t *testing.T) {
	_, err := CompileSource("def f x =")
	require.Error(t, err)
}

func TestCompileSourceRejectsTypeError(t *testing.T) {
	_, err := CompileSource(`def f = 1 + "two"`)
	require.Error(t, err)
}

func TestTypecheckSourceOkOnWellTypedProgram(t *testing.T) {
	ok, msg := TypecheckSource(`def add x y = x + y`)
	assert.True(t, ok)
	assert.Empty(t, msg)
}

func TestTypecheckSourceReportsMismatch(t *testing.T) {
	ok, msg := TypecheckSource(`def f = 1 + "two"`)
	assert.False(t, ok)
	assert.NotEmpty(t, msg)
}

func TestTokenizeRoundTripsSpans(t *testing.T) {
	src := "def x = 1"
	tokens, lexErr := Tokenize(src)
	require.Nil(t, lexErr)
	require.NotEmpty(t, tokens)
	for _, tok := range tokens {
		if tok.Span.End <= len(src) {
			assert.Equal(t, tok.Span.End-tok.Span.Start >= 0, true)
		}
	}
}

func TestParseProducesModuleInSourceOrder(t *testing.T) {
	tokens, lexErr := Tokenize("def a = 1\ndef b = 2")
	require.Nil(t, lexErr)
	mod, err := Parse(tokens)
	require.NoError(t, err)
	require.Len(t, mod.Declarations, 2)
}

func TestCheckModuleReturnsDefTypes(t *testing.T) {
	tokens, lexErr := Tokenize("def a = 1")
	require.Nil(t, lexErr)
	mod, err := Parse(tokens)
	require.NoError(t, err)
	_, result, err := CheckModule(mod)
	require.NoError(t, err)
	assert.Contains(t, result.Order, "a")
}

func TestCompileRetainsIntermediateStages(t *testing.T) {
	result, err := Compile(`def answer = 42`)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens)
	assert.Len(t, result.Module.Declarations, 1)
	assert.Contains(t, result.Checked.Order, "answer")
	assert.Contains(t, result.Output, "answer = 42")
}
