package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/pfn/internal/lexer"
	"github.com/funvibe/pfn/internal/parser"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	toks, lexErr := lexer.Tokenize(src)
	require.Nil(t, lexErr)
	mod, err := parser.Parse(toks)
	require.NoError(t, err)
	out, err := GenerateModule(mod)
	require.NoError(t, err)
	return out
}

func TestGenerateFactorialUsesKnotTyingCell(t *testing.T) {
	out := generate(t, `def fact n =
		if n == 0 then 1 else n * fact (n - 1)`)
	assert.Contains(t, out, "fact = (lambda __cell: ")
	assert.Contains(t, out, "__setitem__(0,")
	assert.Contains(t, out, "__cell[0]((n - 1))")
}

func TestGenerateLetFuncUsesKnotTyingCell(t *testing.T) {
	out := generate(t, `def main = let go n = if n == 0 then 1 else n * go (n - 1) in go 5`)
	assert.Contains(t, out, "__cell")
	assert.Contains(t, out, "__setitem__(0,")
}

func TestGenerateNonRecursiveDefSkipsCell(t *testing.T) {
	out := generate(t, `def square x = x * x`)
	assert.Contains(t, out, "square = (lambda x: (x * x))")
	assert.NotContains(t, out, "__cell")
}

func TestGenerateZeroArityDef(t *testing.T) {
	out := generate(t, `def answer = 42`)
	assert.Contains(t, out, "answer = 42")
}

func TestGenerateExportedDefEmitsAlias(t *testing.T) {
	out := generate(t, `@py.export("double") def twice x = x + x`)
	assert.Contains(t, out, "twice = ")
	assert.Contains(t, out, "double = twice")
}

func TestGenerateRecordTypeEmitsInitFields(t *testing.T) {
	out := generate(t, `type Point = {x: Int, y: Int}
def origin = {x: 0, y: 0}`)
	assert.Contains(t, out, "class Point:")
	assert.Contains(t, out, "def __init__(self, x, y):")
	assert.Contains(t, out, "self.x = x")
	assert.Contains(t, out, "self.y = y")
	assert.Contains(t, out, "Record({")
}

func TestGenerateSumTypeOneClassPerConstructor(t *testing.T) {
	out := generate(t, `type Shape = Circle Float | Square Float
def areaOf s = match s with
	| Circle r => r * r
	| Square side => side * side`)
	assert.Contains(t, out, "class Circle:")
	assert.Contains(t, out, "class Square:")
	assert.Contains(t, out, "def __init__(self, a0):")
	assert.Contains(t, out, "Shape = Union[Circle, Square]")
}

func TestGenerateZeroArgConstructorIsSingleton(t *testing.T) {
	out := generate(t, `type Signal = Stop | Go
def isStop s = match s with
	| Stop => True
	| Go => False`)
	assert.Contains(t, out, "class Stop:\n    pass\nStop = Stop()")
	assert.Contains(t, out, "class Go:\n    pass\nGo = Go()")
	assert.Contains(t, out, "Signal = Union[Stop, Go]")
}

func TestGenerateEmptyListPatternUsesDirectEquality(t *testing.T) {
	out := generate(t, `def headOrZero xs = match xs with
	| [] => 0
	| x :: _ => x`)
	assert.Contains(t, out, "== []")
}

func TestGeneratePreludeDeclaresBuiltinUnionAliases(t *testing.T) {
	out := generate(t, `def main = 0`)
	assert.Contains(t, out, "from typing import Union")
	assert.Contains(t, out, "Option = Union[Some, _None_]")
	assert.Contains(t, out, "Result = Union[Ok, Error]")
	assert.Contains(t, out, "Ordering = Union[LT, EQ, GT]")
}

func TestGenerateMatchChainsTernaries(t *testing.T) {
	out := generate(t, `def describe n = match n with
	| 0 => "zero"
	| _ => "nonzero"`)
	assert.Contains(t, out, " if ")
	assert.Contains(t, out, " else ")
	assert.Contains(t, out, "__match_val")
}

func TestGenerateMatchGuardCombinesWithCheck(t *testing.T) {
	out := generate(t, `def sign n = match n with
	| x if x > 0 => 1
	| x if x < 0 => -1
	| _ => 0`)
	assert.Contains(t, out, " and ")
}

func TestGenerateImportPfnInternalUsesStarImport(t *testing.T) {
	out := generate(t, "import List\ndef main = 0")
	assert.Contains(t, out, "from List import *")
}

func TestGenerateImportPythonVerbatim(t *testing.T) {
	out := generate(t, "import py.math as m\ndef main = 0")
	assert.Contains(t, out, "import math as m")
}

func TestGeneratePreludeIncludesRecordShim(t *testing.T) {
	out := generate(t, `def main = 0`)
	assert.Contains(t, out, "class Record:")
	assert.Contains(t, out, "class Some:")
	assert.Contains(t, out, "_None_ = _None_()")
	assert.Contains(t, out, "def __with_handler(handlers, thunk):")
	assert.Contains(t, out, "def __effect_perform(effect, operation, *args):")
}

func TestGeneratePerformCallsEffectRuntime(t *testing.T) {
	out := generate(t, `def main = perform Console.print("hi")`)
	assert.Contains(t, out, `__effect_perform("Console", "print", "hi")`)
}
