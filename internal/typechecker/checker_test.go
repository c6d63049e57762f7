package typechecker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/pfn/internal/ast"
	"github.com/funvibe/pfn/internal/lexer"
	"github.com/funvibe/pfn/internal/parser"
	"github.com/funvibe/pfn/internal/types"
)

func checkSource(t *testing.T, src string) *ModuleResult {
	t.Helper()
	toks, lexErr := lexer.Tokenize(src)
	require.Nil(t, lexErr)
	mod, err := parser.Parse(toks)
	require.NoError(t, err)
	c := NewChecker()
	result, err := c.CheckModule(mod)
	require.NoError(t, err)
	return result
}

func TestInferFactorialLetFunc(t *testing.T) {
	result := checkSource(t, `def fact n =
		if n == 0 then 1 else n * fact (n - 1)`)
	typ, ok := result.DefTypes["fact"]
	require.True(t, ok)
	fn, ok := typ.(*types.Fun)
	require.True(t, ok)
	assert.Equal(t, types.Int.String(), fn.Param.String())
	assert.Equal(t, types.Int.String(), fn.Result.String())
}

func TestInferIdentityLetPolymorphism(t *testing.T) {
	result := checkSource(t, `def main = let id = fn x => x in (id 1, id True)`)
	typ := result.DefTypes["main"]
	tuple, ok := typ.(*types.Tuple)
	require.True(t, ok)
	require.Len(t, tuple.Elements, 2)
	assert.Equal(t, types.Int.String(), tuple.Elements[0].String())
	assert.Equal(t, types.Bool.String(), tuple.Elements[1].String())
}

func TestInferMatchOverOption(t *testing.T) {
	result := checkSource(t, `def describe opt = match opt with
		| Some x => x
		| None => 0`)
	typ, ok := result.DefTypes["describe"]
	require.True(t, ok)
	fn, ok := typ.(*types.Fun)
	require.True(t, ok)
	con, ok := fn.Param.(*types.Con)
	require.True(t, ok)
	assert.Equal(t, "Option", con.Name)
	assert.Equal(t, types.Int.String(), fn.Result.String())
}

func TestInferNonExhaustiveMatchFails(t *testing.T) {
	toks, lexErr := lexer.Tokenize(`def describe opt = match opt with
		| Some x => x`)
	require.Nil(t, lexErr)
	mod, err := parser.Parse(toks)
	require.NoError(t, err)
	c := NewChecker()
	_, cerr := c.CheckModule(mod)
	require.Error(t, cerr)
}

func TestInferConsAndListLiteral(t *testing.T) {
	result := checkSource(t, `def xs = 1 :: 2 :: []`)
	typ, ok := result.DefTypes["xs"]
	require.True(t, ok)
	list, ok := typ.(*types.List)
	require.True(t, ok)
	assert.Equal(t, types.Int.String(), list.Elem.String())
}

func TestInferUserRecordType(t *testing.T) {
	result := checkSource(t, `type Point = { x: Int, y: Int }
def origin = { x: 0, y: 0 }`)
	typ, ok := result.DefTypes["origin"]
	require.True(t, ok)
	_, ok = typ.(*types.Record)
	require.True(t, ok)
}

func TestInferUserSumTypeConstructor(t *testing.T) {
	result := checkSource(t, `type Shape = Circle Int | Square Int
def areaOf s = match s with
	| Circle r => r
	| Square side => side`)
	typ, ok := result.DefTypes["areaOf"]
	require.True(t, ok)
	fn, ok := typ.(*types.Fun)
	require.True(t, ok)
	con, ok := fn.Param.(*types.Con)
	require.True(t, ok)
	assert.Equal(t, "Shape", con.Name)
}

func TestResolveTypeRefPrimitives(t *testing.T) {
	c := NewChecker()
	t1, err := c.ResolveTypeRef(&ast.SimpleTypeRef{Name: "List", Args: []ast.TypeRef{&ast.SimpleTypeRef{Name: "Int"}}})
	require.NoError(t, err)
	list, ok := t1.(*types.List)
	require.True(t, ok)
	assert.Equal(t, types.Int.String(), list.Elem.String())
}
